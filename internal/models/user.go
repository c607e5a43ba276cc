package models

// Role values the app understands. The store does not validate roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a row of the users table.
type User struct {
	ID           int64  `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"passwordHash" json:"-"`
	Role         string `db:"role" json:"role"`
}

// IsAdmin reports whether the stored role is the admin tier.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
