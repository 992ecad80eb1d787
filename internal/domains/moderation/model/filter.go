package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ListFilter is the repository-level query. Nil fields do not filter.
// Results are always ordered by created_at DESC.
type ListFilter struct {
	Status       *Status
	SubmitterID  *uuid.UUID
	ProfileID    *uuid.UUID    // voicebank only
	TutorialType *TutorialType // tutorial only
	Difficulty   *Difficulty   // tutorial only
}

// PublicFilter narrows ListPublic
type PublicFilter struct {
	ProfileID    *uuid.UUID
	TutorialType *TutorialType
	Difficulty   *Difficulty
}

// ListFilter converts to a repository query pinned to APPROVED
func (f PublicFilter) ListFilter() ListFilter {
	approved := StatusApproved
	return ListFilter{
		Status:       &approved,
		ProfileID:    f.ProfileID,
		TutorialType: f.TutorialType,
		Difficulty:   f.Difficulty,
	}
}

// CacheKey is stable for equal filters
func (f PublicFilter) CacheKey(kind Kind) string {
	parts := []string{"public", kind.String()}
	if f.ProfileID != nil {
		parts = append(parts, "p="+f.ProfileID.String())
	}
	if f.TutorialType != nil {
		parts = append(parts, "t="+string(*f.TutorialType))
	}
	if f.Difficulty != nil {
		parts = append(parts, "d="+string(*f.Difficulty))
	}
	return "moderation:" + strings.Join(parts, ":")
}

// PublicGenerationKey holds the counter bumped on every decision of a kind.
// Cached listings are keyed by generation, so a bump invalidates them all.
func PublicGenerationKey(kind Kind) string {
	return fmt.Sprintf("moderation:public-gen:%s", kind)
}

// RecordList is the serializable form of a mixed []Record
type RecordList struct {
	Kind       Kind         `json:"kind"`
	Voicebanks []*Voicebank `json:"voicebanks,omitempty"`
	Tutorials  []*Tutorial  `json:"tutorials,omitempty"`
}

func NewRecordList(kind Kind, records []Record) RecordList {
	list := RecordList{Kind: kind}
	for _, r := range records {
		switch v := r.(type) {
		case *Voicebank:
			list.Voicebanks = append(list.Voicebanks, v)
		case *Tutorial:
			list.Tutorials = append(list.Tutorials, v)
		}
	}
	return list
}

func (l RecordList) Records() []Record {
	out := make([]Record, 0, len(l.Voicebanks)+len(l.Tutorials))
	for _, v := range l.Voicebanks {
		out = append(out, v)
	}
	for _, t := range l.Tutorials {
		out = append(out, t)
	}
	return out
}
