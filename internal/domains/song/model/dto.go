package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"vocalhub-backend/internal/infrastructure/storage"
)

// CreateSongRequest mirrors the upload form
type CreateSongRequest struct {
	Title       string        `json:"title"`
	ProfileID   *uuid.UUID    `json:"vocaloidId"`
	Creator     string        `json:"creator"`
	BilibiliURL string        `json:"bilibiliUrl"`
	Lyrics      string        `json:"lyrics"`
	SongFile    *storage.File `json:"songFile"`
	CoverFile   *storage.File `json:"coverFile"` // optional
}

func (r *CreateSongRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 200),
		),
		validation.Field(&r.ProfileID, validation.Required.Error("choose a voice profile")),
		validation.Field(&r.Creator, validation.Length(0, 100)),
		validation.Field(&r.BilibiliURL, is.URL),
		validation.Field(&r.SongFile, validation.By(func(value interface{}) error {
			f, _ := value.(*storage.File)
			if !f.Present() {
				return validation.NewError("validation_required", "song file is required")
			}
			return nil
		})),
	)
}
