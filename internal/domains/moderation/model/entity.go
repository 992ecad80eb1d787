package model

import (
	"time"

	"github.com/google/uuid"

	"vocalhub-backend/internal/shared/auth"
)

// Moderation is the review state shared by every moderatable record
type Moderation struct {
	SubmitterID uuid.UUID `json:"submitter_id"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (m *Moderation) ModerationState() *Moderation {
	return m
}

// VisibleTo: approved records are public; others only to their submitter or an admin
func (m *Moderation) VisibleTo(actor auth.Actor) bool {
	return m.Status == StatusApproved || actor.IsAdmin() || actor.Owns(m.SubmitterID)
}

// Record is a moderatable entity of any kind
type Record interface {
	Kind() Kind
	RecordID() uuid.UUID
	DisplayName() string
	ModerationState() *Moderation
}

// =====================================================
// VOICEBANK
// =====================================================

// ProfileSummary is the slice of the voice profile shown with a voicebank
type ProfileSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	AvatarRef string    `json:"avatar_ref"`
}

type Voicebank struct {
	ID            uuid.UUID       `json:"id"`
	ProfileID     uuid.UUID       `json:"profile_id"`
	FileRef       string          `json:"file_ref"`
	SampleRef     string          `json:"sample_ref"`
	VoiceProvider *string         `json:"voice_provider,omitempty"`
	Profile       *ProfileSummary `json:"profile,omitempty"`
	Moderation
}

func (v *Voicebank) Kind() Kind          { return KindVoicebank }
func (v *Voicebank) RecordID() uuid.UUID { return v.ID }

func (v *Voicebank) DisplayName() string {
	if v.Profile != nil {
		return v.Profile.Name
	}
	return v.ID.String()
}

// =====================================================
// TUTORIAL
// =====================================================

type TutorialType string

const (
	TutorialVoicebankCreation TutorialType = "VOICEBANK_CREATION"
	TutorialSongCreation      TutorialType = "SONG_CREATION"
	TutorialTuning            TutorialType = "TUNING"
	TutorialOther             TutorialType = "OTHER"
)

func (t TutorialType) Valid() bool {
	switch t {
	case TutorialVoicebankCreation, TutorialSongCreation, TutorialTuning, TutorialOther:
		return true
	}
	return false
}

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "BEGINNER"
	DifficultyIntermediate Difficulty = "INTERMEDIATE"
	DifficultyAdvanced     Difficulty = "ADVANCED"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

type Tutorial struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Type        TutorialType `json:"type"`
	Difficulty  Difficulty   `json:"difficulty"`
	FileRef     string       `json:"file_ref"`
	Engines     []string     `json:"engines,omitempty"`
	Moderation
}

func (t *Tutorial) Kind() Kind          { return KindTutorial }
func (t *Tutorial) RecordID() uuid.UUID { return t.ID }
func (t *Tutorial) DisplayName() string { return t.Title }
