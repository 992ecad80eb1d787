package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"vocalhub-backend/internal/shared/utils"
)

type RegisterRequest struct {
	Email            string `json:"email"`
	Name             string `json:"name,omitempty"`
	Password         string `json:"password"`
	VerificationCode string `json:"verificationCode"`
}

func (r *RegisterRequest) Normalize() {
	r.Email = utils.NormalizeEmail(r.Email)
	r.Name = strings.TrimSpace(r.Name)
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
			validation.Length(5, 255),
		),
		validation.Field(&r.Name, validation.Length(0, 100)),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(6, 128).Error("password must be 6-128 characters"),
		),
		validation.Field(&r.VerificationCode, validation.Required.Error("registration code is required")),
	)
}

type LoginRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	VerificationCode string `json:"verificationCode"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.VerificationCode, validation.Required),
	)
}

type LoginResponse struct {
	AccessToken string     `json:"access_token"`
	ExpiresAt   time.Time  `json:"expires_at"`
	Account     AccountDTO `json:"account"`
}
