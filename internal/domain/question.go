package domain

import "time"

// Question is the aggregate for forum questions, including its view record.
type Question struct {
	ID           int64
	AuthorID     int64
	Title        string
	Description  string
	Tags         []string
	Views        int
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Distinct viewer sets backing the views counter. A viewer is keyed
	// by user id when authenticated, by session id otherwise. The counter
	// invariant is Views == len(ViewedBySessions) + len(ViewedByUsers).
	ViewedBySessions map[string]struct{}
	ViewedByUsers    map[int64]struct{}
}

// RegisterView records a view for the given viewer and reports whether it
// was new. An authenticated user id takes precedence over the session id,
// so one account counts once across devices. Repeated calls with the same
// key leave the counter untouched.
func (q *Question) RegisterView(sessionID string, userID *int64) bool {
	isNew := false

	switch {
	case userID != nil:
		if q.ViewedByUsers == nil {
			q.ViewedByUsers = make(map[int64]struct{})
		}
		if _, seen := q.ViewedByUsers[*userID]; !seen {
			q.ViewedByUsers[*userID] = struct{}{}
			isNew = true
		}
	case sessionID != "":
		if q.ViewedBySessions == nil {
			q.ViewedBySessions = make(map[string]struct{})
		}
		if _, seen := q.ViewedBySessions[sessionID]; !seen {
			q.ViewedBySessions[sessionID] = struct{}{}
			isNew = true
		}
	}

	if isNew {
		q.Views++
	}
	return isNew
}
