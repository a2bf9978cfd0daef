package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/pkg/apperror"
	"github.com/sangkips/retail-pos/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

// AuthService issues cashier session tokens. Routes never require a token;
// when one is sent, the cashier name on sales is taken from it.
type AuthService struct {
	docs       *Documents
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(docs *Documents, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{docs: docs, jwtManager: jwtManager}
}

// LoginInput represents the login input
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User        *entity.User
	AccessToken string
	ExpiresAt   time.Time
}

// Login authenticates an active user. Users without a stored password hash
// are let in on username alone.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, apperror.NewFieldError("username", "is required")
	}

	var user entity.User
	err := s.docs.View(ctx, func(doc *entity.Document) error {
		for _, u := range doc.Users {
			if strings.EqualFold(u.Username, username) {
				user = u
				return nil
			}
		}
		return apperror.ErrInvalidCredentials
	})
	if err != nil {
		return nil, err
	}

	if !user.IsActive() {
		return nil, apperror.ErrInactiveUser
	}
	if user.PasswordHash != "" && !checkPassword(input.Password, user.PasswordHash) {
		return nil, apperror.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtManager.GenerateToken(user.ID, user.Username, user.FullName, string(user.Role))
	if err != nil {
		return nil, err
	}

	log.Info().Str("user", user.Username).Str("role", string(user.Role)).Msg("User logged in")
	user.PasswordHash = ""
	return &LoginOutput{User: &user, AccessToken: token, ExpiresAt: expiresAt}, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
