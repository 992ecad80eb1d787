package model

import (
	"time"

	"github.com/google/uuid"
)

// Song is published immediately; it has no moderation state
type Song struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	ProfileID   uuid.UUID `json:"profile_id"`
	SubmitterID uuid.UUID `json:"submitter_id"`
	FileRef     string    `json:"file_ref"`
	CoverRef    *string   `json:"cover_ref,omitempty"`
	Creator     *string   `json:"creator,omitempty"`
	BilibiliURL *string   `json:"bilibili_url,omitempty"`
	Lyrics      *string   `json:"lyrics,omitempty"`
	ProfileName string    `json:"profile_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
