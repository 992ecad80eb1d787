package model

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	profileModel "vocalhub-backend/internal/domains/profile/model"
	"vocalhub-backend/internal/infrastructure/storage"
)

// SubmitRequest is implemented by every kind's submission payload
type SubmitRequest interface {
	Kind() Kind
	Validate() error
}

// =====================================================
// VOICEBANK SUBMISSION
// =====================================================

type VoicebankSubmission struct {
	Name          string              `json:"name"`
	Gender        profileModel.Gender `json:"gender"`
	Engines       []string            `json:"engines"`
	Languages     []string            `json:"languages"`
	VoiceProvider string              `json:"voiceprovider"`
	Description   string              `json:"description"`

	// NewProfile creates a VoiceProfile from the fields above;
	// otherwise ProfileID must name an existing one.
	NewProfile bool       `json:"isNewVocaloid"`
	ProfileID  *uuid.UUID `json:"vocaloidId"`

	VoicebankFile *storage.File `json:"voicebankFile"`
	SampleFile    *storage.File `json:"sampleFile"`
	AvatarFile    *storage.File `json:"avatarFile"`
	ImageFile     *storage.File `json:"imageFile"` // optional
}

func (r *VoicebankSubmission) Kind() Kind { return KindVoicebank }

func (r *VoicebankSubmission) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.Gender,
			validation.Required.Error("gender is required"),
			validation.By(func(interface{}) error {
				if !r.Gender.Valid() {
					return errors.New("gender must be MALE, FEMALE or UNKNOWN")
				}
				return nil
			}),
		),
		validation.Field(&r.Engines, validation.Required.Error("select at least one engine")),
		validation.Field(&r.Languages, validation.Required.Error("select at least one language")),
		validation.Field(&r.VoiceProvider, validation.Length(0, 200)),
		validation.Field(&r.ProfileID,
			validation.When(!r.NewProfile, validation.Required.Error("choose an existing profile or create a new one")),
		),
		validation.Field(&r.VoicebankFile, validation.By(requiredFile("voicebank file is required"))),
		validation.Field(&r.SampleFile, validation.By(requiredFile("sample file is required"))),
		validation.Field(&r.AvatarFile,
			validation.When(r.NewProfile, validation.By(requiredFile("avatar is required for a new profile"))),
		),
	)
}

// =====================================================
// TUTORIAL SUBMISSION
// =====================================================

type TutorialSubmission struct {
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Type         TutorialType  `json:"type"`
	Difficulty   Difficulty    `json:"difficulty"`
	Engines      []string      `json:"engineType"`
	TutorialFile *storage.File `json:"tutorialFile"`
}

func (r *TutorialSubmission) Kind() Kind { return KindTutorial }

func (r *TutorialSubmission) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 200),
		),
		validation.Field(&r.Description, validation.Required.Error("description is required")),
		validation.Field(&r.Type,
			validation.Required.Error("type is required"),
			validation.By(func(interface{}) error {
				if !r.Type.Valid() {
					return errors.New("unknown tutorial type")
				}
				return nil
			}),
		),
		validation.Field(&r.Difficulty,
			validation.Required.Error("difficulty is required"),
			validation.By(func(interface{}) error {
				if !r.Difficulty.Valid() {
					return errors.New("unknown difficulty")
				}
				return nil
			}),
		),
		validation.Field(&r.TutorialFile, validation.By(requiredFile("tutorial file is required"))),
	)
}

func requiredFile(msg string) validation.RuleFunc {
	return func(value interface{}) error {
		f, _ := value.(*storage.File)
		if !f.Present() {
			return errors.New(msg)
		}
		return nil
	}
}

// =====================================================
// RESPONSES
// =====================================================

// SubmitResponse is returned after a successful Submit
type SubmitResponse struct {
	ID     uuid.UUID `json:"id"`
	Kind   Kind      `json:"kind"`
	Status Status    `json:"status"`
}

// Stats holds the admin dashboard counters
type Stats struct {
	Pending map[Kind]int `json:"pending"`
}
