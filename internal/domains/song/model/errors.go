package model

import "vocalhub-backend/internal/shared/apperror"

var (
	ErrSongNotFound  = apperror.NotFound("SONG_NOT_FOUND", "song not found")
	ErrLoginRequired = apperror.Unauthorized("LOGIN_REQUIRED", "sign in to upload songs")
)
