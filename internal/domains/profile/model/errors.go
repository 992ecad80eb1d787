package model

import "vocalhub-backend/internal/shared/apperror"

var ErrProfileNotFound = apperror.NotFound("PROFILE_NOT_FOUND", "voice profile not found")
