package models

import "time"

type UserRole string

const (
	UserRoleUser       UserRole = "USER"
	UserRoleEditor     UserRole = "EDITOR"
	UserRoleAdmin      UserRole = "ADMIN"
	UserRoleSuperAdmin UserRole = "SUPERADMIN"
)

// AssignableRole maps a requested role string to a role that may be handed
// out through the role-update endpoint. Anything outside USER/EDITOR/ADMIN
// falls back to USER; SUPERADMIN is never assignable through this path.
func AssignableRole(requested string) UserRole {
	switch requested {
	case string(UserRoleUser):
		return UserRoleUser
	case string(UserRoleEditor):
		return UserRoleEditor
	case string(UserRoleAdmin):
		return UserRoleAdmin
	default:
		return UserRoleUser
	}
}

type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	FirstName    string
	LastName     string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ToggleFavourite applies membership-toggle semantics to a favourites set:
// if tipID is present it is removed (all occurrences), otherwise it is
// appended once at the end. The second return reports whether the id was
// added.
func ToggleFavourite(favourites []string, tipID string) ([]string, bool) {
	updated := make([]string, 0, len(favourites)+1)
	found := false
	for _, id := range favourites {
		if id == tipID {
			found = true
			continue
		}
		updated = append(updated, id)
	}
	if found {
		return updated, false
	}
	return append(updated, tipID), true
}
