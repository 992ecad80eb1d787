package model

import "vocalhub-backend/internal/shared/apperror"

var (
	ErrAccountNotFound         = apperror.NotFound("ACCOUNT_NOT_FOUND", "account not found")
	ErrEmailAlreadyExists      = apperror.Conflict("EMAIL_EXISTS", "email already registered")
	ErrInvalidRegistrationCode = apperror.Validation("INVALID_REGISTRATION_CODE", "registration code is incorrect")
	ErrInvalidCredentials      = apperror.Unauthorized("INVALID_CREDENTIALS", "invalid email or password")
)
