package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"vocalhub-backend/internal/domains/account/model"
	"vocalhub-backend/internal/shared"
	"vocalhub-backend/internal/shared/apperror"
	"vocalhub-backend/internal/shared/auth"
	"vocalhub-backend/pkg/jwt"
)

const code = "114514"

type memAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*model.Account
}

func (r *memAccountRepo) Create(_ context.Context, a *model.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[a.Email]; ok {
		return model.ErrEmailAlreadyExists
	}
	r.accounts[a.Email] = a
	return nil
}

func (r *memAccountRepo) FindByEmail(_ context.Context, email string) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.accounts[email]; ok {
		return a, nil
	}
	return nil, model.ErrAccountNotFound
}

func (r *memAccountRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, model.ErrAccountNotFound
}

func (r *memAccountRepo) GetBasicInfo(ctx context.Context, id uuid.UUID) (*shared.AccountBasicInfo, error) {
	a, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &shared.AccountBasicInfo{ID: a.ID.String(), Email: a.Email}, nil
}

func newTestService() (*accountService, *jwt.Manager) {
	tokens := jwt.NewManager("test-secret", time.Hour)
	svc := NewAccountService(&memAccountRepo{accounts: map[string]*model.Account{}}, tokens, code).(*accountService)
	svc.hashCost = bcrypt.MinCost
	return svc, tokens
}

func TestRegisterAndLogin(t *testing.T) {
	svc, tokens := newTestService()
	ctx := context.Background()

	dto, err := svc.Register(ctx, model.RegisterRequest{
		Email:            " Miku@Example.com ",
		Name:             "Miku",
		Password:         "secret123",
		VerificationCode: code,
	})
	require.NoError(t, err)
	assert.Equal(t, "miku@example.com", dto.Email)
	assert.Equal(t, auth.RoleUser, dto.Role)

	resp, err := svc.Login(ctx, model.LoginRequest{
		Email:            "miku@example.com",
		Password:         "secret123",
		VerificationCode: code,
	})
	require.NoError(t, err)
	assert.Equal(t, dto.ID, resp.Account.ID)

	claims, err := tokens.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, dto.ID.String(), claims.AccountID)
	assert.Equal(t, "USER", claims.Role)

	profile, err := svc.GetProfile(ctx, dto.ID)
	require.NoError(t, err)
	require.NotNil(t, profile.DisplayName)
	assert.Equal(t, "Miku", *profile.DisplayName)
}

func TestRegisterRejectsWrongCode(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Email:            "a@example.com",
		Password:         "secret123",
		VerificationCode: "000000",
	})
	assert.ErrorIs(t, err, model.ErrInvalidRegistrationCode)
	assert.True(t, apperror.IsValidation(err))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	req := model.RegisterRequest{Email: "a@example.com", Password: "secret123", VerificationCode: code}

	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	req.Email = "A@example.com"
	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, model.ErrEmailAlreadyExists)
	assert.True(t, apperror.IsConflict(err))
}

func TestLoginFailures(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, model.RegisterRequest{Email: "a@example.com", Password: "secret123", VerificationCode: code})
	require.NoError(t, err)

	_, err = svc.Login(ctx, model.LoginRequest{Email: "a@example.com", Password: "wrong-pass", VerificationCode: code})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)

	_, err = svc.Login(ctx, model.LoginRequest{Email: "b@example.com", Password: "secret123", VerificationCode: code})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)

	_, err = svc.Login(ctx, model.LoginRequest{Email: "a@example.com", Password: "secret123", VerificationCode: "1"})
	assert.ErrorIs(t, err, model.ErrInvalidRegistrationCode)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), model.RegisterRequest{Email: "nope", Password: "1", VerificationCode: code})
	require.True(t, apperror.IsValidation(err))

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Details, "email")
	assert.Contains(t, appErr.Details, "password")
}
