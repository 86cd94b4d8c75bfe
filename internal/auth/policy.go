package auth

import "github.com/spec-kit/forum-service/internal/domain"

// Pure authorization decisions. Each function is total over its inputs and
// a nil identity (anonymous caller) always denies. The functions only
// return booleans; turning a denial into an error is the caller's concern.

// CanCreateQuestion allows members and admins to post questions.
func CanCreateQuestion(identity *Identity) bool {
	return hasRole(identity, domain.RoleMember, domain.RoleAdmin)
}

// CanMutateQuestion allows admins unconditionally, otherwise only the author.
func CanMutateQuestion(identity *Identity, questionAuthorID int64) bool {
	if identity == nil {
		return false
	}
	if identity.Role == domain.RoleAdmin {
		return true
	}
	return identity.ID == questionAuthorID
}

// CanDeleteQuestion mirrors mutation: admin or author.
func CanDeleteQuestion(identity *Identity, questionAuthorID int64) bool {
	return CanMutateQuestion(identity, questionAuthorID)
}

// CanCreateAnswer allows members and admins to answer questions.
func CanCreateAnswer(identity *Identity) bool {
	return hasRole(identity, domain.RoleMember, domain.RoleAdmin)
}

// CanMutateAnswer allows admins unconditionally, otherwise only the author.
func CanMutateAnswer(identity *Identity, answerAuthorID int64) bool {
	return CanMutateQuestion(identity, answerAuthorID)
}

// CanDeleteTag is admin-only.
func CanDeleteTag(identity *Identity) bool {
	return hasRole(identity, domain.RoleAdmin)
}

// CanManageUsers is admin-only.
func CanManageUsers(identity *Identity) bool {
	return hasRole(identity, domain.RoleAdmin)
}

func hasRole(identity *Identity, allowed ...domain.Role) bool {
	if identity == nil {
		return false
	}
	for _, role := range allowed {
		if identity.Role == role {
			return true
		}
	}
	return false
}
