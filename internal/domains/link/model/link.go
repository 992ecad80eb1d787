package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"vocalhub-backend/internal/shared/apperror"
)

type Category string

const (
	CategoryVoicebankDownload Category = "VOICEBANK_DOWNLOAD"
	CategoryCommunity         Category = "COMMUNITY"
	CategoryTools             Category = "TOOLS"
	CategoryOther             Category = "OTHER"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryVoicebankDownload, CategoryCommunity, CategoryTools, CategoryOther:
		return true
	}
	return false
}

var ErrInvalidCategory = apperror.Validation("INVALID_CATEGORY", "unknown link category")

// ParseCategory returns nil for an empty string
func ParseCategory(s string) (*Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	c := Category(strings.ToUpper(s))
	if !c.Valid() {
		return nil, ErrInvalidCategory
	}
	return &c, nil
}

// Link is a curated external resource
type Link struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	Category    Category  `json:"category"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateLinkRequest struct {
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
}

func (r *CreateLinkRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.URL, validation.Required, is.URL),
		validation.Field(&r.Category,
			validation.Required,
			validation.In(CategoryVoicebankDownload, CategoryCommunity, CategoryTools, CategoryOther).
				Error("must be VOICEBANK_DOWNLOAD, COMMUNITY, TOOLS or OTHER"),
		),
		validation.Field(&r.Description, validation.Required, validation.Length(1, 500)),
	)
}
