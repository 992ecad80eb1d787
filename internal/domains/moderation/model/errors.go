package model

import "vocalhub-backend/internal/shared/apperror"

var (
	ErrSubmissionNotFound = apperror.NotFound("SUBMISSION_NOT_FOUND", "submission not found")
	ErrLoginRequired      = apperror.Unauthorized("LOGIN_REQUIRED", "sign in to submit content")
)
