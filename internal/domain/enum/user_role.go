package enum

// UserRole represents the role of a POS user
type UserRole string

const (
	UserRoleAdmin     UserRole = "Admin"
	UserRoleCashier   UserRole = "Kasir"
	UserRoleWarehouse UserRole = "Gudang"
)

// CanOperateRegister reports whether the role rings up sales.
func (r UserRole) CanOperateRegister() bool {
	return r == UserRoleAdmin || r == UserRoleCashier
}

// UserStatus represents whether a user may log in
type UserStatus string

const (
	UserStatusActive   UserStatus = "Aktif"
	UserStatusInactive UserStatus = "Non-Aktif"
)
