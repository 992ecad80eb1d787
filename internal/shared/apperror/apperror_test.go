package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errThingNotFound = NotFound("THING_NOT_FOUND", "thing not found")

func TestSentinelSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("load thing: %w", errThingNotFound.Wrap(errors.New("no rows")))

	assert.ErrorIs(t, err, errThingNotFound)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsStorage(err))
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := map[*Error]int{
		Validation("X", "x"):           http.StatusBadRequest,
		NotFound("X", "x"):             http.StatusNotFound,
		Storage("x", nil):              http.StatusInternalServerError,
		Conflict("X", "x"):             http.StatusConflict,
		Unauthorized("X", "x"):         http.StatusUnauthorized,
		Forbidden("X", "x"):            http.StatusForbidden,
		Internal("x", errors.New("")): http.StatusInternalServerError,
	}
	for e, status := range cases {
		assert.Equal(t, status, e.HTTPStatus(), e.Type.String())
	}
}

func TestFromValidationCollectsFieldDetails(t *testing.T) {
	req := struct{ Name, Email string }{}
	verr := validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Email, validation.Required),
	)
	require.Error(t, verr)

	appErr := FromValidation(verr)
	require.NotNil(t, appErr)
	assert.Equal(t, TypeValidation, appErr.Type)

	details, ok := appErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "Name")
	assert.Contains(t, details, "Email")
}

func TestTypeOfPlainError(t *testing.T) {
	assert.Equal(t, TypeInternal, TypeOf(errors.New("boom")))
}
