package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ondetemapp/ondetem/internal/auth"
	"github.com/ondetemapp/ondetem/internal/models"
	"github.com/ondetemapp/ondetem/internal/store"
)

func newAuthService(users store.Users) *AuthService {
	return NewAuthService(users, auth.NewTokenIssuer("test-secret", time.Hour))
}

func seedPasswordUser(t *testing.T, users store.Users, email, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	hashStr := string(hash)
	user := &models.User{ID: uuid.New(), Name: "Test", Email: email, PasswordHash: &hashStr}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestLoginSuccess(t *testing.T) {
	users := store.NewMemoryUsers()
	seeded := seedPasswordUser(t, users, "ana@example.com", "senha123")
	svc := newAuthService(users)

	result, err := svc.Login(context.Background(), "Ana@Example.com", "senha123")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, seeded.ID, result.User.ID)

	identity, err := auth.NewLegacyStrategy("test-secret").Verify(context.Background(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID.String(), identity.LegacyUserID)
}

func TestLoginFailureIsIndistinguishable(t *testing.T) {
	users := store.NewMemoryUsers()
	seedPasswordUser(t, users, "ana@example.com", "senha123")
	svc := newAuthService(users)

	_, unknownEmailErr := svc.Login(context.Background(), "ninguem@example.com", "senha123")
	_, wrongPasswordErr := svc.Login(context.Background(), "ana@example.com", "errada")

	require.Error(t, unknownEmailErr)
	require.Error(t, wrongPasswordErr)
	assert.Equal(t, unknownEmailErr.Error(), wrongPasswordErr.Error())
	assert.ErrorIs(t, unknownEmailErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPasswordErr, ErrInvalidCredentials)
}

func TestLoginRejectsFirebaseOnlyAccount(t *testing.T) {
	users := store.NewMemoryUsers()
	uid := "fb-1"
	require.NoError(t, users.Create(context.Background(), &models.User{
		ID: uuid.New(), Name: "Bia", Email: "bia@example.com", FirebaseUID: &uid,
	}))
	svc := newAuthService(users)

	_, err := svc.Login(context.Background(), "bia@example.com", "qualquer")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterThenLogin(t *testing.T) {
	users := store.NewMemoryUsers()
	svc := newAuthService(users)

	result, err := svc.Register(context.Background(), "Novo", "Novo@Example.com", "senha123")
	require.NoError(t, err)
	assert.Equal(t, "novo@example.com", result.User.Email)
	assert.NotEmpty(t, result.Token)

	again, err := svc.Login(context.Background(), "novo@example.com", "senha123")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, again.User.ID)
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthService(store.NewMemoryUsers())

	_, err := svc.Register(context.Background(), "", "a@b.com", "senha123")
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.Register(context.Background(), "Nome", "a@b.com", "curta")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := store.NewMemoryUsers()
	seedPasswordUser(t, users, "dup@example.com", "senha123")
	svc := newAuthService(users)

	_, err := svc.Register(context.Background(), "Outro", "DUP@example.com", "senha456")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUpdatePushToken(t *testing.T) {
	users := store.NewMemoryUsers()
	user := seedPasswordUser(t, users, "push@example.com", "senha123")
	svc := newAuthService(users)

	updated, err := svc.UpdatePushToken(context.Background(), user, "ExponentPushToken[abc]")
	require.NoError(t, err)
	require.NotNil(t, updated.PushToken)
	assert.Equal(t, "ExponentPushToken[abc]", *updated.PushToken)

	stored, err := users.ByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.PushToken)
	assert.Equal(t, "ExponentPushToken[abc]", *stored.PushToken)
}

func TestCreateOrUpdateUserRequiresFirebaseIdentity(t *testing.T) {
	svc := newAuthService(store.NewMemoryUsers())

	_, err := svc.CreateOrUpdateUser(context.Background(), nil, UserProfileInput{FirebaseUID: "fb-1"})
	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)

	legacy := &auth.Identity{LegacyUserID: uuid.NewString()}
	_, err = svc.CreateOrUpdateUser(context.Background(), legacy, UserProfileInput{FirebaseUID: "fb-1"})
	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
}

func TestCreateOrUpdateUserRejectsForeignUID(t *testing.T) {
	svc := newAuthService(store.NewMemoryUsers())
	identity := &auth.Identity{FirebaseUID: "fb-mine"}

	_, err := svc.CreateOrUpdateUser(context.Background(), identity, UserProfileInput{FirebaseUID: "fb-theirs"})
	assert.ErrorIs(t, err, ErrFirebaseUIDMismatch)
}

func TestCreateOrUpdateUserCreatesAndUpdates(t *testing.T) {
	users := store.NewMemoryUsers()
	svc := newAuthService(users)
	identity := &auth.Identity{FirebaseUID: "fb-7", Email: "sete@example.com"}

	created, err := svc.CreateOrUpdateUser(context.Background(), identity, UserProfileInput{
		FirebaseUID: "fb-7", Email: "Sete@Example.com", Name: "Sete",
	})
	require.NoError(t, err)
	assert.Equal(t, "sete@example.com", created.Email)

	updated, err := svc.CreateOrUpdateUser(context.Background(), identity, UserProfileInput{
		FirebaseUID: "fb-7", Email: "sete@example.com", Name: "Sete Renomeado",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Sete Renomeado", updated.Name)
	assert.Equal(t, 1, users.Count())
}

func TestCreateOrUpdateUserLinksExistingEmail(t *testing.T) {
	users := store.NewMemoryUsers()
	existing := seedPasswordUser(t, users, "liga@example.com", "senha123")
	svc := newAuthService(users)
	identity := &auth.Identity{FirebaseUID: "fb-link", Email: "liga@example.com"}

	linked, err := svc.CreateOrUpdateUser(context.Background(), identity, UserProfileInput{
		FirebaseUID: "fb-link", Email: "liga@example.com", Name: "Ligado",
	})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, linked.ID)
	require.NotNil(t, linked.FirebaseUID)
	assert.Equal(t, "fb-link", *linked.FirebaseUID)
	assert.Equal(t, 1, users.Count())
}
