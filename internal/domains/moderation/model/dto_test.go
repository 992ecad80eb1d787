package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	profileModel "vocalhub-backend/internal/domains/profile/model"
	"vocalhub-backend/internal/infrastructure/storage"
	"vocalhub-backend/internal/shared/apperror"
)

func validVoicebank() *VoicebankSubmission {
	return &VoicebankSubmission{
		Name:          "Test",
		Gender:        profileModel.GenderFemale,
		Engines:       []string{"UTAU"},
		Languages:     []string{"English"},
		NewProfile:    true,
		VoicebankFile: storage.BytesFile("vb.zip", []byte("zip")),
		SampleFile:    storage.BytesFile("sample.mp3", []byte("mp3")),
		AvatarFile:    storage.BytesFile("avatar.png", []byte("png")),
	}
}

func validTutorial() *TutorialSubmission {
	return &TutorialSubmission{
		Title:        "Tuning basics",
		Description:  "Pitch bends and vibrato",
		Type:         TutorialTuning,
		Difficulty:   DifficultyBeginner,
		TutorialFile: storage.BytesFile("guide.pdf", []byte("%PDF")),
	}
}

func failingField(t *testing.T, err error) []string {
	t.Helper()
	require.Error(t, err)
	appErr := apperror.FromValidation(err)
	require.Equal(t, apperror.TypeValidation, appErr.Type)
	details, ok := appErr.Details.(map[string]string)
	require.True(t, ok)
	fields := make([]string, 0, len(details))
	for f := range details {
		fields = append(fields, f)
	}
	return fields
}

func TestVoicebankSubmissionValid(t *testing.T) {
	assert.NoError(t, validVoicebank().Validate())

	existing := validVoicebank()
	existing.NewProfile = false
	existing.AvatarFile = nil
	pid := uuid.New()
	existing.ProfileID = &pid
	assert.NoError(t, existing.Validate())
}

func TestVoicebankSubmissionRequiredFields(t *testing.T) {
	cases := map[string]func(r *VoicebankSubmission){
		"name":          func(r *VoicebankSubmission) { r.Name = "" },
		"gender":        func(r *VoicebankSubmission) { r.Gender = "" },
		"engines":       func(r *VoicebankSubmission) { r.Engines = nil },
		"languages":     func(r *VoicebankSubmission) { r.Languages = []string{} },
		"voicebankFile": func(r *VoicebankSubmission) { r.VoicebankFile = nil },
		"sampleFile":    func(r *VoicebankSubmission) { r.SampleFile = nil },
		"avatarFile":    func(r *VoicebankSubmission) { r.AvatarFile = nil },
		"vocaloidId":    func(r *VoicebankSubmission) { r.NewProfile = false },
	}

	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			req := validVoicebank()
			mutate(req)
			assert.Equal(t, []string{field}, failingField(t, req.Validate()))
		})
	}
}

func TestVoicebankSubmissionRejectsUnknownGender(t *testing.T) {
	req := validVoicebank()
	req.Gender = "ROBOT"
	assert.Equal(t, []string{"gender"}, failingField(t, req.Validate()))
}

func TestTutorialSubmissionRequiredFields(t *testing.T) {
	assert.NoError(t, validTutorial().Validate())

	cases := map[string]func(r *TutorialSubmission){
		"title":        func(r *TutorialSubmission) { r.Title = "" },
		"description":  func(r *TutorialSubmission) { r.Description = "" },
		"type":         func(r *TutorialSubmission) { r.Type = "" },
		"difficulty":   func(r *TutorialSubmission) { r.Difficulty = "" },
		"tutorialFile": func(r *TutorialSubmission) { r.TutorialFile = nil },
	}

	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			req := validTutorial()
			mutate(req)
			assert.Equal(t, []string{field}, failingField(t, req.Validate()))
		})
	}
}

func TestTutorialSubmissionRejectsUnknownEnums(t *testing.T) {
	req := validTutorial()
	req.Type = "COOKING"
	req.Difficulty = "EXPERT"
	assert.ElementsMatch(t, []string{"type", "difficulty"}, failingField(t, req.Validate()))
}
