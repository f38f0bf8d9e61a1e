package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mattyonemillion/henlo/internal/domain/entity"
	"github.com/Mattyonemillion/henlo/pkg/errors"
)

type fakeFirebaseAuth struct {
	accounts map[string]string // uid -> email
	deleted  []string
}

func newFakeFirebaseAuth() *fakeFirebaseAuth {
	return &fakeFirebaseAuth{accounts: make(map[string]string)}
}

func (f *fakeFirebaseAuth) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	uid := "uid-" + uuid.New().String()[:8]
	f.accounts[uid] = email
	return uid, nil
}

func (f *fakeFirebaseAuth) VerifyToken(ctx context.Context, token string) (string, error) {
	for uid := range f.accounts {
		if token == "token-"+f.accounts[uid] {
			return uid, nil
		}
	}
	return "", fmt.Errorf("invalid token")
}

func (f *fakeFirebaseAuth) GenerateToken(ctx context.Context, uid string) (string, error) {
	return "custom-" + uid, nil
}

func (f *fakeFirebaseAuth) UpdateUserPassword(ctx context.Context, uid, newPassword string) error {
	return nil
}

func (f *fakeFirebaseAuth) DeleteUser(ctx context.Context, uid string) error {
	f.deleted = append(f.deleted, uid)
	delete(f.accounts, uid)
	return nil
}

func (f *fakeFirebaseAuth) SignInWithEmailPassword(email, password string) (string, error) {
	return "token-" + email, nil
}

func (f *fakeFirebaseAuth) SignInWithEmailPasswordWithRefresh(email, password string) (string, string, error) {
	return "token-" + email, "refresh-" + email, nil
}

func (f *fakeFirebaseAuth) RefreshIdToken(refreshToken string) (string, string, error) {
	return "refreshed-token", "rotated-refresh", nil
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Email:    "bram@example.nl",
		Password: "wachtwoord123",
		Username: "bram",
		FullName: "Bram de Vries",
		Phone:    "+31612345678",
	}
}

func TestRegisterCreatesUserWithNotificationDefaults(t *testing.T) {
	userRepo := newFakeUserRepo()
	uc := NewAuthUseCase(userRepo, newFakeFirebaseAuth())

	result, err := uc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	assert.NotEmpty(t, result.Token)
	assert.NotEmpty(t, result.RefreshToken)
	assert.True(t, result.User.NotifyNewMessage)
	assert.True(t, result.User.NotifyPaymentUpdate)

	stored, err := userRepo.GetByID(context.Background(), result.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "bram", stored.Username)
}

func TestRegisterRejectsDuplicateEmailAndUsername(t *testing.T) {
	userRepo := newFakeUserRepo(&entity.User{ID: "u1", Email: "bram@example.nl", Username: "bram"})
	uc := NewAuthUseCase(userRepo, newFakeFirebaseAuth())

	_, err := uc.Register(context.Background(), validRegisterInput())
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	input := validRegisterInput()
	input.Email = "anders@example.nl"
	_, err = uc.Register(context.Background(), input)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

// If persisting the profile fails, the auth account is rolled back so the
// email can be registered again.
func TestRegisterRollsBackAuthAccountOnRepoFailure(t *testing.T) {
	firebaseAuth := newFakeFirebaseAuth()
	uc := NewAuthUseCase(failingUserRepo{}, firebaseAuth)

	_, err := uc.Register(context.Background(), validRegisterInput())
	assert.Error(t, err)
	assert.Len(t, firebaseAuth.deleted, 1)
	assert.Empty(t, firebaseAuth.accounts)
}

func TestLoginReturnsProfileWithTokens(t *testing.T) {
	firebaseAuth := newFakeFirebaseAuth()
	uid, err := firebaseAuth.CreateUser(context.Background(), "bram@example.nl", "pw", "bram")
	require.NoError(t, err)

	userRepo := newFakeUserRepo(&entity.User{ID: uid, Email: "bram@example.nl", Username: "bram"})
	uc := NewAuthUseCase(userRepo, firebaseAuth)

	result, err := uc.Login(context.Background(), "bram@example.nl", "pw")
	require.NoError(t, err)
	assert.Equal(t, uid, result.User.ID)
	assert.Equal(t, "token-bram@example.nl", result.Token)
}

func TestRefreshTokenRotates(t *testing.T) {
	uc := NewAuthUseCase(newFakeUserRepo(), newFakeFirebaseAuth())

	token, refresh, err := uc.RefreshToken(context.Background(), "old-refresh")
	require.NoError(t, err)
	assert.Equal(t, "refreshed-token", token)
	assert.Equal(t, "rotated-refresh", refresh)
}

// failingUserRepo errors on every write.
type failingUserRepo struct{}

func (failingUserRepo) Create(ctx context.Context, user *entity.User) error {
	return fmt.Errorf("firestore unavailable")
}

func (failingUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return nil, errors.NotFound("User not found", nil)
}

func (failingUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, errors.NotFound("User not found", nil)
}

func (failingUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return nil, errors.NotFound("User not found", nil)
}

func (failingUserRepo) Update(ctx context.Context, user *entity.User) error {
	return fmt.Errorf("firestore unavailable")
}
