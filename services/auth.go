package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Jeevankiran1503/Prodigy-FS-03/logging"
	"github.com/Jeevankiran1503/Prodigy-FS-03/metrics"
	"github.com/Jeevankiran1503/Prodigy-FS-03/models"
	"github.com/Jeevankiran1503/Prodigy-FS-03/security"
	"github.com/Jeevankiran1503/Prodigy-FS-03/store"
)

// MsgInvalidCredentials is returned for unknown emails and wrong passwords alike.
const MsgInvalidCredentials = "Invalid email or password"

// MsgNotAuthorized is the only message a failed session check ever produces.
const MsgNotAuthorized = "Not authorized"

// MsgRegisterRequired is returned when a registration lacks a name, email or password.
const MsgRegisterRequired = "Name, email and password are required"

// MsgInvalidRole is returned when a registration asks for an unknown role.
const MsgInvalidRole = "Role must be user or admin"

// MsgAdminSignupDisabled is returned for admin registrations when admin signup is off.
const MsgAdminSignupDisabled = "Admin accounts cannot be self-registered"

type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResult is a signed-in identity and the session token issued for it.
type AuthResult struct {
	User  models.PublicUser
	Token string
}

// Session is what a valid token proves about its bearer.
type Session struct {
	UserID string      `json:"userId"`
	Role   models.Role `json:"role"`
}

type AuthService struct {
	users      store.UserRepository
	tokens     *security.TokenManager
	bcryptCost int

	noAdminSignup bool
}

func NewAuthService(users store.UserRepository, tokens *security.TokenManager, bcryptCost int) *AuthService {
	return &AuthService{users: users, tokens: tokens, bcryptCost: bcryptCost}
}

// SetAdminSignup controls whether Register accepts the admin role. It is
// allowed by default.
func (s *AuthService) SetAdminSignup(allowed bool) {
	s.noAdminSignup = !allowed
}

func (s *AuthService) Tokens() *security.TokenManager {
	return s.tokens
}

// Register creates an identity with a hashed password and signs it in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, validationError(MsgRegisterRequired)
	}

	role := models.RoleUser
	if in.Role != "" {
		role = models.Role(in.Role)
		if !role.Valid() {
			return nil, validationError(MsgInvalidRole)
		}
		if role == models.RoleAdmin && s.noAdminSignup {
			return nil, validationError(MsgAdminSignupDisabled)
		}
	}

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, validationError("User already exists")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, upstreamError("Server Error", err)
	}

	hash, err := security.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, upstreamError("Server Error", err)
	}

	user := &models.User{Name: name, Email: email, Password: hash, Role: role}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, validationError("User already exists")
		}
		return nil, upstreamError("Server Error", err)
	}

	logging.Ctx(ctx).Info().Str("user_id", user.ID).Str("role", string(role)).Msg("user registered")
	return s.issue(user)
}

// Login checks credentials. Both failure paths return the same error.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		metrics.AuthFailures.WithLabelValues("login").Inc()
		return nil, authError(MsgInvalidCredentials, nil)
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, upstreamError("Server Error", err)
		}
		metrics.AuthFailures.WithLabelValues("login").Inc()
		return nil, authError(MsgInvalidCredentials, nil)
	}

	if !security.CheckPassword(user.Password, in.Password) {
		metrics.AuthFailures.WithLabelValues("login").Inc()
		return nil, authError(MsgInvalidCredentials, nil)
	}

	return s.issue(user)
}

// ValidateSession verifies a session token. The cause of a rejection is only
// logged, never returned in the message.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*Session, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		metrics.AuthFailures.WithLabelValues("session").Inc()
		logging.Ctx(ctx).Debug().Err(err).Msg("session rejected")
		return nil, authError(MsgNotAuthorized, err)
	}
	return &Session{UserID: claims.UserID, Role: models.Role(claims.Role)}, nil
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID, string(user.Role))
	if err != nil {
		return nil, upstreamError("Server Error", err)
	}
	return &AuthResult{User: user.Public(), Token: token}, nil
}
