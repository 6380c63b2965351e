package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testForm struct {
	Name   string   `validate:"required"`
	Email  string   `validate:"required,email"`
	Kind   string   `validate:"required,testkind"`
	Images []string `validate:"max=2,dive,url"`
}

func TestValidator_Validate(t *testing.T) {
	v := NewValidator()
	require.NoError(t, v.RegisterChoice("testkind", []string{"Birthday Shoutout", "Event Hosting"}))

	err := v.Validate(testForm{
		Name:   "Serj",
		Email:  "serj@example.com",
		Kind:   "Event Hosting",
		Images: []string{"https://img.example.com/1.png"},
	})
	assert.NoError(t, err)

	err = v.Validate(testForm{
		Email:  "not-an-email",
		Kind:   "Wedding",
		Images: []string{"https://a.b/1", "https://a.b/2", "https://a.b/3"},
	})
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Messages, "name is required")
	assert.Contains(t, validationErr.Messages, "email must be a valid email")
	assert.Contains(t, validationErr.Messages, "kind has an unsupported value")
	assert.Contains(t, validationErr.Messages, "images must have at most 2 entries")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 20))
	assert.Equal(t, "exactly twenty chars", Truncate("exactly twenty chars", 20))
	assert.Equal(t, "this message is long...", Truncate("this message is longer than twenty", 20))
	assert.Equal(t, "čćžšđ...", Truncate("čćžšđčćžšđ", 5))
}
