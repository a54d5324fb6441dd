package domain

import (
	"strings"
	"time"
	"unicode"
)

// UserProfile is the authenticated staff member as held by a session. The JSON
// shape is what gets persisted under the session storage key.
type UserProfile struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Email             string       `json:"email,omitempty"`
	Role              Role         `json:"role"`
	Roles             []Role       `json:"roles,omitempty"`
	CustomPermissions []Permission `json:"customPermissions,omitempty"`
	Avatar            string       `json:"avatar"`
}

// AssignedRoles returns the additional role list when present, otherwise the
// primary role alone.
func (u *UserProfile) AssignedRoles() []Role {
	if len(u.Roles) > 0 {
		return u.Roles
	}
	return []Role{u.Role}
}

// Clone returns a deep copy so callers cannot mutate session state.
func (u *UserProfile) Clone() *UserProfile {
	if u == nil {
		return nil
	}
	c := *u
	if u.Roles != nil {
		c.Roles = append([]Role(nil), u.Roles...)
	}
	if u.CustomPermissions != nil {
		c.CustomPermissions = append([]Permission(nil), u.CustomPermissions...)
	}
	return &c
}

// Equal compares two profiles field by field, treating nil and empty slices alike.
func (u *UserProfile) Equal(o *UserProfile) bool {
	if u == nil || o == nil {
		return u == o
	}
	if u.ID != o.ID || u.Name != o.Name || u.Email != o.Email || u.Role != o.Role || u.Avatar != o.Avatar {
		return false
	}
	if len(u.Roles) != len(o.Roles) || len(u.CustomPermissions) != len(o.CustomPermissions) {
		return false
	}
	for i := range u.Roles {
		if u.Roles[i] != o.Roles[i] {
			return false
		}
	}
	for i := range u.CustomPermissions {
		if u.CustomPermissions[i] != o.CustomPermissions[i] {
			return false
		}
	}
	return true
}

// Credential binds a login email and password hash to the profile it signs in as.
type Credential struct {
	Email        string
	PasswordHash string
	Profile      UserProfile
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Initials builds avatar initials from a display name: the first letter of
// the first and last words, upper-cased.
func Initials(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return ""
	}
	first := firstLetter(words[0])
	if len(words) == 1 {
		return first
	}
	return first + firstLetter(words[len(words)-1])
}

func firstLetter(word string) string {
	for _, r := range word {
		return string(unicode.ToUpper(r))
	}
	return ""
}

// NormalizeEmail lower-cases and trims an email for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
