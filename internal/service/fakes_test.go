package service

import (
	"context"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/forum-service/internal/domain"
	"github.com/spec-kit/forum-service/internal/events"
	"github.com/spec-kit/forum-service/internal/repository"
)

// In-memory repository fakes shared by the service tests. They mirror the
// Postgres implementations' contract, including pgx.ErrNoRows on misses.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	user.ID = r.nextID
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context, limit, offset int) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]int64, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []domain.User
	for i, id := range ids {
		if i < offset {
			continue
		}
		if len(out) >= limit {
			break
		}
		out = append(out, *r.users[id])
	}
	return out, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

type fakeQuestionRepo struct {
	mu        sync.Mutex
	nextID    int64
	questions map[int64]*domain.Question
	tagsByQ   map[int64][]int64
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{
		questions: make(map[int64]*domain.Question),
		tagsByQ:   make(map[int64][]int64),
	}
}

func (r *fakeQuestionRepo) Create(_ context.Context, question *domain.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	question.ID = r.nextID
	r.questions[question.ID] = question
	return nil
}

func (r *fakeQuestionRepo) Update(_ context.Context, question *domain.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.questions[question.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.questions[question.ID] = question
	return nil
}

func (r *fakeQuestionRepo) GetByID(_ context.Context, id int64) (*domain.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	question, ok := r.questions[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return question, nil
}

func (r *fakeQuestionRepo) ListWithFilter(_ context.Context, filter repository.QuestionFilter) ([]domain.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Question
	for _, question := range r.questions {
		out = append(out, *question)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeQuestionRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.questions[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.questions, id)
	return nil
}

func (r *fakeQuestionRepo) ReplaceTags(_ context.Context, questionID int64, tagIDs []int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tagsByQ[questionID] = tagIDs
	return nil
}

func (r *fakeQuestionRepo) RegisterUserView(_ context.Context, questionID, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	question, ok := r.questions[questionID]
	if !ok {
		return false, pgx.ErrNoRows
	}
	return question.RegisterView("", &userID), nil
}

func (r *fakeQuestionRepo) RegisterSessionView(_ context.Context, questionID int64, sessionID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	question, ok := r.questions[questionID]
	if !ok {
		return false, pgx.ErrNoRows
	}
	return question.RegisterView(sessionID, nil), nil
}

type fakeAnswerRepo struct {
	mu      sync.Mutex
	nextID  int64
	answers map[int64]*domain.Answer
}

func newFakeAnswerRepo() *fakeAnswerRepo {
	return &fakeAnswerRepo{answers: make(map[int64]*domain.Answer)}
}

func (r *fakeAnswerRepo) Create(_ context.Context, answer *domain.Answer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	answer.ID = r.nextID
	clone := *answer
	r.answers[answer.ID] = &clone
	return nil
}

func (r *fakeAnswerRepo) Update(_ context.Context, answer *domain.Answer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.answers[answer.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *answer
	r.answers[answer.ID] = &clone
	return nil
}

func (r *fakeAnswerRepo) GetByID(_ context.Context, id int64) (*domain.Answer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	answer, ok := r.answers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *answer
	return &clone, nil
}

func (r *fakeAnswerRepo) ListByQuestion(_ context.Context, questionID int64) ([]domain.Answer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Answer
	for _, answer := range r.answers {
		if answer.QuestionID == questionID {
			out = append(out, *answer)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeAnswerRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.answers[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.answers, id)
	return nil
}

type fakeTagRepo struct {
	mu     sync.Mutex
	nextID int64
	byName map[string]*domain.Tag
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{byName: make(map[string]*domain.Tag)}
}

func (r *fakeTagRepo) EnsureByName(_ context.Context, name string) (*domain.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tag, ok := r.byName[name]; ok {
		clone := *tag
		return &clone, nil
	}
	r.nextID++
	tag := &domain.Tag{ID: r.nextID, Name: name}
	r.byName[name] = tag
	clone := *tag
	return &clone, nil
}

func (r *fakeTagRepo) List(_ context.Context) ([]domain.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Tag
	for _, tag := range r.byName {
		out = append(out, *tag)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeTagRepo) GetByID(_ context.Context, id int64) (*domain.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tag := range r.byName {
		if tag.ID == id {
			clone := *tag
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeTagRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for name, tag := range r.byName {
		if tag.ID == id {
			delete(r.byName, name)
			return nil
		}
	}
	return pgx.ErrNoRows
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	nextID        int64
	notifications map[int64]*domain.Notification
	createErr     error
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[int64]*domain.Notification)}
}

func (r *fakeNotificationRepo) Create(_ context.Context, notification *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	notification.ID = r.nextID
	clone := *notification
	r.notifications[notification.ID] = &clone
	return nil
}

func (r *fakeNotificationRepo) GetByID(_ context.Context, id int64) (*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	notification, ok := r.notifications[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *notification
	return &clone, nil
}

func (r *fakeNotificationRepo) ListByUser(_ context.Context, userID int64) ([]domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Notification
	for _, notification := range r.notifications {
		if notification.UserID == userID {
			out = append(out, *notification)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	notification, ok := r.notifications[id]
	if !ok {
		return false, nil
	}
	notification.Read = true
	return true, nil
}

type push struct {
	channel string
	payload any
}

type fakeRealtimePublisher struct {
	mu      sync.Mutex
	pushes  []push
	failErr error
}

func (p *fakeRealtimePublisher) Publish(_ context.Context, channel string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failErr != nil {
		return p.failErr
	}
	p.pushes = append(p.pushes, push{channel: channel, payload: payload})
	return nil
}

type fakeMailer struct {
	mu       sync.Mutex
	enqueued []string
	failErr  error
}

func (m *fakeMailer) EnqueuePasswordReset(_ context.Context, email, resetLink string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	m.enqueued = append(m.enqueued, email+" "+resetLink)
	return nil
}

// capturingDispatcher records published events without invoking handlers.
type capturingDispatcher struct {
	mu        sync.Mutex
	published []events.Event
}

func (d *capturingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.published = append(d.published, event)
	return nil
}

func (d *capturingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *capturingDispatcher) events() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.published...)
}
