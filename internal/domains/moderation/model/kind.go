package model

import (
	"strings"

	"vocalhub-backend/internal/shared/apperror"
)

// Kind is the closed set of moderatable entity kinds
type Kind string

const (
	KindVoicebank Kind = "voicebank"
	KindTutorial  Kind = "tutorial"
)

// Kinds lists every moderatable kind
func Kinds() []Kind {
	return []Kind{KindVoicebank, KindTutorial}
}

func (k Kind) Valid() bool {
	return k == KindVoicebank || k == KindTutorial
}

func (k Kind) String() string { return string(k) }

var ErrUnknownKind = apperror.Validation("UNKNOWN_KIND", "unknown submission kind")

// ParseKind accepts singular or plural, any case ("Voicebanks" -> voicebank)
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s"))
	if !k.Valid() {
		return "", ErrUnknownKind.WithDetails(s)
	}
	return k, nil
}

// =====================================================
// STATUS
// =====================================================

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

var ErrInvalidStatus = apperror.Validation("INVALID_STATUS", "status must be PENDING, APPROVED or REJECTED")

// ParseStatus returns nil for an empty string
func ParseStatus(s string) (*Status, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	st := Status(strings.ToUpper(s))
	if !st.Valid() {
		return nil, ErrInvalidStatus
	}
	return &st, nil
}
