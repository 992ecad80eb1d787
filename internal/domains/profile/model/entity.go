package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale    Gender = "MALE"
	GenderFemale  Gender = "FEMALE"
	GenderUnknown Gender = "UNKNOWN"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderUnknown:
		return true
	}
	return false
}

// ParseGender is case-insensitive; unknown values stay invalid
func ParseGender(s string) Gender {
	return Gender(strings.ToUpper(strings.TrimSpace(s)))
}

// VoiceProfile is the character a voicebank or song belongs to
type VoiceProfile struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Gender         Gender    `json:"gender"`
	Engines        []string  `json:"engines"`
	Languages      []string  `json:"languages"`
	AvatarRef      string    `json:"avatar_ref"`
	AvatarThumbRef *string   `json:"avatar_thumb_ref,omitempty"`
	ImageRef       *string   `json:"image_ref,omitempty"`
	Description    *string   `json:"description,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// ListFilter narrows the profile directory. Zero value lists everything.
type ListFilter struct {
	Query    string // substring of the name, case-insensitive
	Engine   string
	Language string
	Gender   Gender
}
