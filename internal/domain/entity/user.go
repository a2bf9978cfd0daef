package entity

import "github.com/sangkips/retail-pos/internal/domain/enum"

// User is a POS operator.
type User struct {
	ID           string          `json:"id"`
	Username     string          `json:"username"`
	FullName     string          `json:"full_name"`
	Role         enum.UserRole   `json:"role"`
	Status       enum.UserStatus `json:"status"`
	PasswordHash string          `json:"password_hash,omitempty"`
}

// IsActive reports whether the user may log in.
func (u *User) IsActive() bool {
	return u.Status == enum.UserStatusActive
}
