package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"vocalhub-backend/internal/domains/account/model"
	"vocalhub-backend/internal/domains/account/repository"
	"vocalhub-backend/internal/shared/apperror"
	"vocalhub-backend/internal/shared/auth"
	"vocalhub-backend/internal/shared/utils"
)

type ServiceInterface interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.AccountDTO, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*model.AccountDTO, error)
}

// TokenIssuer is satisfied by *jwt.Manager
type TokenIssuer interface {
	GenerateAccessToken(accountID, email, role string) (string, error)
	AccessTTL() time.Duration
}

type accountService struct {
	repo             repository.Repository
	tokens           TokenIssuer
	registrationCode string
	hashCost         int
}

func NewAccountService(repo repository.Repository, tokens TokenIssuer, registrationCode string) ServiceInterface {
	return &accountService{
		repo:             repo,
		tokens:           tokens,
		registrationCode: registrationCode,
		hashCost:         bcrypt.DefaultCost,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

// Register - Create a USER account gated by the shared registration code
func (s *accountService) Register(ctx context.Context, req model.RegisterRequest) (*model.AccountDTO, error) {
	// 1. Normalize and validate input
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	// 2. Check registration code
	if !s.codeMatches(req.VerificationCode) {
		return nil, model.ErrInvalidRegistrationCode
	}

	// 3. Hash password
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 4. Build entity; role is always USER here
	now := time.Now().UTC()
	account := &model.Account{
		ID:           uuid.New(),
		Email:        req.Email,
		DisplayName:  utils.OptionalString(req.Name),
		PasswordHash: string(hash),
		Role:         auth.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// 5. Save; duplicate emails surface as ErrEmailAlreadyExists from the unique index
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}

	log.Info().Str("account_id", account.ID.String()).Msg("account registered")

	dto := account.ToDTO()
	return &dto, nil
}

// Login - Verify credentials and issue an access token
func (s *accountService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	if !s.codeMatches(req.VerificationCode) {
		return nil, model.ErrInvalidRegistrationCode
	}

	// Unknown email and wrong password look the same to the caller
	account, err := s.repo.FindByEmail(ctx, utils.NormalizeEmail(req.Email))
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(account.ID.String(), account.Email, string(account.Role))
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &model.LoginResponse{
		AccessToken: token,
		ExpiresAt:   time.Now().Add(s.tokens.AccessTTL()),
		Account:     account.ToDTO(),
	}, nil
}

func (s *accountService) GetProfile(ctx context.Context, id uuid.UUID) (*model.AccountDTO, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := account.ToDTO()
	return &dto, nil
}

func (s *accountService) codeMatches(code string) bool {
	return subtle.ConstantTimeCompare([]byte(code), []byte(s.registrationCode)) == 1
}
