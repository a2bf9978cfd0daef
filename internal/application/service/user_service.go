package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/internal/domain/enum"
	"github.com/sangkips/retail-pos/pkg/apperror"
)

// UserService manages POS operator accounts
type UserService struct {
	docs *Documents
}

// NewUserService creates a new user service
func NewUserService(docs *Documents) *UserService {
	return &UserService{docs: docs}
}

// UserInput represents the create/update user input. An empty password
// keeps the stored one on update.
type UserInput struct {
	Username string
	FullName string
	Password string
	Role     enum.UserRole
	Status   enum.UserStatus
}

// ListUsers returns every user without password hashes
func (s *UserService) ListUsers(ctx context.Context) ([]entity.User, error) {
	var out []entity.User
	err := s.docs.View(ctx, func(doc *entity.Document) error {
		for _, u := range doc.Users {
			u.PasswordHash = ""
			out = append(out, u)
		}
		return nil
	})
	return out, err
}

// CreateUser adds a user with a unique username
func (s *UserService) CreateUser(ctx context.Context, input *UserInput) (*entity.User, error) {
	if input.Password == "" {
		return nil, apperror.NewFieldError("password", "is required")
	}
	user := entity.User{ID: "user-" + uuid.New().String()[:8]}
	if err := applyUserInput(&user, input); err != nil {
		return nil, err
	}

	err := s.docs.Update(ctx, func(doc *entity.Document) error {
		if usernameTaken(doc, user.Username, "") {
			return apperror.NewConflictError("Username already exists")
		}
		doc.Users = append(doc.Users, user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return &user, nil
}

// UpdateUser changes a user's profile, role, status and optionally password
func (s *UserService) UpdateUser(ctx context.Context, id string, input *UserInput) (*entity.User, error) {
	var updated entity.User
	err := s.docs.Update(ctx, func(doc *entity.Document) error {
		for i := range doc.Users {
			if doc.Users[i].ID != id {
				continue
			}
			user := doc.Users[i]
			if err := applyUserInput(&user, input); err != nil {
				return err
			}
			if usernameTaken(doc, user.Username, id) {
				return apperror.NewConflictError("Username already exists")
			}
			doc.Users[i] = user
			updated = user
			return nil
		}
		return apperror.NewNotFoundError("User")
	})
	if err != nil {
		return nil, err
	}
	updated.PasswordHash = ""
	return &updated, nil
}

// DeleteUser removes a user
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	return s.docs.Update(ctx, func(doc *entity.Document) error {
		for i := range doc.Users {
			if doc.Users[i].ID == id {
				doc.Users = append(doc.Users[:i], doc.Users[i+1:]...)
				return nil
			}
		}
		return apperror.NewNotFoundError("User")
	})
}

func applyUserInput(user *entity.User, input *UserInput) error {
	user.Username = strings.TrimSpace(input.Username)
	user.FullName = strings.TrimSpace(input.FullName)
	if user.Username == "" {
		return apperror.NewFieldError("username", "is required")
	}
	if user.FullName == "" {
		return apperror.NewFieldError("full_name", "is required")
	}

	switch input.Role {
	case enum.UserRoleAdmin, enum.UserRoleCashier, enum.UserRoleWarehouse:
		user.Role = input.Role
	case "":
		user.Role = enum.UserRoleCashier
	default:
		return apperror.NewFieldError("role", "must be one of: Admin, Kasir, Gudang")
	}
	switch input.Status {
	case enum.UserStatusActive, enum.UserStatusInactive:
		user.Status = input.Status
	case "":
		user.Status = enum.UserStatusActive
	default:
		return apperror.NewFieldError("status", "must be Aktif or Non-Aktif")
	}

	if input.Password != "" {
		hash, err := hashPassword(input.Password)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
	}
	return nil
}

func usernameTaken(doc *entity.Document, username, ignoreID string) bool {
	for _, u := range doc.Users {
		if u.ID != ignoreID && strings.EqualFold(u.Username, username) {
			return true
		}
	}
	return false
}
