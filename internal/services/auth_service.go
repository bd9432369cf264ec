package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ondetemapp/ondetem/internal/auth"
	"github.com/ondetemapp/ondetem/internal/models"
	"github.com/ondetemapp/ondetem/internal/store"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken          = errors.New("Email já cadastrado")
	ErrInvalidCredentials  = errors.New("Email ou senha inválidos")
	ErrWeakPassword        = errors.New("A senha deve ter pelo menos 6 caracteres")
	ErrMissingFields       = errors.New("Nome, email e senha são obrigatórios")
	ErrFirebaseUIDMismatch = errors.New("Firebase UID não corresponde ao token")
)

// AuthResult pairs a freshly minted legacy token with its user.
type AuthResult struct {
	Token string
	User  *models.User
}

type AuthService struct {
	users  store.Users
	issuer *auth.TokenIssuer
}

func NewAuthService(users store.Users, issuer *auth.TokenIssuer) *AuthService {
	return &AuthService{users: users, issuer: issuer}
}

// Login verifies an email/password pair. Unknown email and wrong password
// collapse into the same error so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.ByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if len(password) < 6 {
		return nil, ErrWeakPassword
	}

	email = strings.ToLower(email)
	if _, err := s.users.ByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	hashStr := string(hash)
	user := &models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: &hashStr,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) UpdatePushToken(ctx context.Context, user *models.User, pushToken string) (*models.User, error) {
	user.PushToken = &pushToken
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UserProfileInput mirrors the client-sent profile for Firebase sign-ins.
type UserProfileInput struct {
	FirebaseUID string
	Email       string
	Name        string
}

// CreateOrUpdateUser syncs the client-side Firebase profile with the user
// record. The caller must have verified the token; the input UID has to match
// the token UID so one user cannot write another's profile.
func (s *AuthService) CreateOrUpdateUser(ctx context.Context, identity *auth.Identity, input UserProfileInput) (*models.User, error) {
	if identity == nil || !identity.IsFirebase() {
		return nil, auth.ErrNotAuthenticated
	}
	if input.FirebaseUID != identity.FirebaseUID {
		return nil, ErrFirebaseUIDMismatch
	}

	user, err := s.users.ByFirebaseUID(ctx, identity.FirebaseUID)
	if err == nil {
		if input.Name != "" {
			user.Name = input.Name
		}
		if input.Email != "" {
			user.Email = strings.ToLower(input.Email)
		}
		if err := s.users.Save(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	email := strings.ToLower(input.Email)
	user, err = s.users.ByEmail(ctx, email)
	if err == nil {
		uid := identity.FirebaseUID
		user.FirebaseUID = &uid
		if input.Name != "" {
			user.Name = input.Name
		}
		if err := s.users.Save(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	uid := identity.FirebaseUID
	user = &models.User{
		ID:          uuid.New(),
		FirebaseUID: &uid,
		Email:       email,
		Name:        input.Name,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
