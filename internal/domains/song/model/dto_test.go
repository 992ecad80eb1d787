package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"vocalhub-backend/internal/infrastructure/storage"
	"vocalhub-backend/internal/shared/apperror"
)

func TestCreateSongRequestValidate(t *testing.T) {
	pid := uuid.New()
	valid := func() *CreateSongRequest {
		return &CreateSongRequest{
			Title:     "Song",
			ProfileID: &pid,
			SongFile:  storage.BytesFile("song.mp3", []byte("mp3")),
		}
	}

	assert.NoError(t, valid().Validate())

	cases := map[string]func(r *CreateSongRequest){
		"title":       func(r *CreateSongRequest) { r.Title = "" },
		"vocaloidId":  func(r *CreateSongRequest) { r.ProfileID = nil },
		"songFile":    func(r *CreateSongRequest) { r.SongFile = nil },
		"bilibiliUrl": func(r *CreateSongRequest) { r.BilibiliURL = "not a url" },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			req := valid()
			mutate(req)
			appErr := apperror.FromValidation(req.Validate())
			assert.Contains(t, appErr.Details, field)
		})
	}
}
