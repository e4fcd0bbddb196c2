package user

import "time"

// Type is the role flag stored in users.user_type_id.
type Type int16

const (
	TypeEmployee Type = 1
	TypeAdmin    Type = 2
)

func (t Type) String() string {
	switch t {
	case TypeEmployee:
		return "employee"
	case TypeAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// Toggled returns the opposite role: employees become admins and vice versa.
func (t Type) Toggled() Type {
	if t == TypeAdmin {
		return TypeEmployee
	}
	return TypeAdmin
}

type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Type         Type
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user may review and manage all requests
func (u *User) IsAdmin() bool {
	return u.Type == TypeAdmin
}
