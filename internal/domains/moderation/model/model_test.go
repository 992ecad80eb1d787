package model

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vocalhub-backend/internal/shared/apperror"
	"vocalhub-backend/internal/shared/auth"
)

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{
		"voicebank":  KindVoicebank,
		"Voicebanks": KindVoicebank,
		"tutorial":   KindTutorial,
		" tutorials": KindTutorial,
	} {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	for _, in := range []string{"", "song", "links", "voicebankss"} {
		_, err := ParseKind(in)
		assert.True(t, apperror.IsValidation(err), in)
	}
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("approved")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, *st)

	st, err = ParseStatus("")
	require.NoError(t, err)
	assert.Nil(t, st)

	_, err = ParseStatus("DELETED")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestVisibleTo(t *testing.T) {
	owner := uuid.New()
	m := &Moderation{SubmitterID: owner, Status: StatusPending}

	assert.False(t, m.VisibleTo(auth.Anonymous()))
	assert.False(t, m.VisibleTo(auth.Actor{AccountID: uuid.New(), Role: auth.RoleUser}))
	assert.True(t, m.VisibleTo(auth.Actor{AccountID: owner, Role: auth.RoleUser}))
	assert.True(t, m.VisibleTo(auth.Actor{AccountID: uuid.New(), Role: auth.RoleAdmin}))

	m.Status = StatusApproved
	assert.True(t, m.VisibleTo(auth.Anonymous()))
}

func TestPublicFilterCacheKey(t *testing.T) {
	pid := uuid.MustParse("7c9e6679-7425-40de-944b-e07fc1f90ae7")
	tuning := TutorialTuning

	assert.Equal(t, "moderation:public:voicebank", PublicFilter{}.CacheKey(KindVoicebank))
	assert.Equal(t, "moderation:public:voicebank:p="+pid.String(), PublicFilter{ProfileID: &pid}.CacheKey(KindVoicebank))
	assert.Equal(t, "moderation:public:tutorial:t=TUNING", PublicFilter{TutorialType: &tuning}.CacheKey(KindTutorial))
	assert.Equal(t, "moderation:public-gen:tutorial", PublicGenerationKey(KindTutorial))

	lf := PublicFilter{ProfileID: &pid}.ListFilter()
	require.NotNil(t, lf.Status)
	assert.Equal(t, StatusApproved, *lf.Status)
}

func TestRecordListSurvivesJSON(t *testing.T) {
	records := []Record{
		&Voicebank{ID: uuid.New(), Moderation: Moderation{Status: StatusApproved}},
		&Voicebank{ID: uuid.New(), Moderation: Moderation{Status: StatusApproved}},
	}

	raw, err := json.Marshal(NewRecordList(KindVoicebank, records))
	require.NoError(t, err)

	var decoded RecordList
	require.NoError(t, json.Unmarshal(raw, &decoded))

	got := decoded.Records()
	require.Len(t, got, 2)
	assert.Equal(t, records[0].RecordID(), got[0].RecordID())
	assert.Equal(t, KindVoicebank, got[1].Kind())
	assert.Equal(t, StatusApproved, got[1].ModerationState().Status)
}
