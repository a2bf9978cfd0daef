package request

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password"`
}

// UserRequest represents a create/update user request. Password may be
// empty on update to keep the current one.
type UserRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	FullName string `json:"full_name" binding:"required,max=255"`
	Password string `json:"password" binding:"omitempty,min=4"`
	Role     string `json:"role" binding:"omitempty,oneof=Admin Kasir Gudang"`
	Status   string `json:"status" binding:"omitempty,oneof=Aktif Non-Aktif"`
}
