package validator

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactForm struct {
	Name    string `validate:"required,min=2"`
	Email   string `validate:"required,email"`
	Message string `validate:"required,max=2000"`
}

func TestValidate_Valid(t *testing.T) {
	err := Validate(contactForm{
		Name:    "Asha",
		Email:   "asha@example.com",
		Message: "Is the first edition still available?",
	})
	assert.NoError(t, err)
}

func TestValidate_CollectsFieldErrors(t *testing.T) {
	err := Validate(contactForm{Name: "A", Email: "not-an-email"})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))

	fields := valErr.Fields()
	assert.Equal(t, "must be at least 2 characters", fields["Name"])
	assert.Equal(t, "must be a valid email address", fields["Email"])
	assert.Equal(t, "is required", fields["Message"])
	assert.Contains(t, valErr.Error(), "field 'Email'")
}

func TestDecodeAndValidate(t *testing.T) {
	body := `{"Name":"Asha","Email":"asha@example.com","Message":"hi there"}`
	r := httptest.NewRequest("POST", "/contact", strings.NewReader(body))

	var form contactForm
	require.NoError(t, DecodeAndValidate(r, &form))
	assert.Equal(t, "Asha", form.Name)
}

func TestDecodeAndValidate_MalformedJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/contact", strings.NewReader("{nope"))

	var form contactForm
	err := DecodeAndValidate(r, &form)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode request body")
}

func TestDecodeAndValidate_RejectsUnknownFields(t *testing.T) {
	body := `{"Name":"Asha","Email":"asha@example.com","Message":"hi","Phone":"123"}`
	r := httptest.NewRequest("POST", "/contact", strings.NewReader(body))

	var form contactForm
	err := DecodeAndValidate(r, &form)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode request body")
}

type taggedForm struct {
	BookID string `json:"book_id" validate:"required"`
}

func TestValidate_FieldKeysUseJSONNames(t *testing.T) {
	err := Validate(taggedForm{})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Contains(t, valErr.Fields(), "book_id")
}
