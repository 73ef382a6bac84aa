package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name" validate:"required,max=5"`
	Email string `json:"email" validate:"required,email"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid struct", func(t *testing.T) {
		assert.NoError(t, ValidateStruct(sample{Name: "Ada", Email: "ada@example.com"}))
	})

	t.Run("reports json field names", func(t *testing.T) {
		err := ValidateStruct(sample{Email: "not-an-email"})

		var verrs ValidationErrors
		require.True(t, errors.As(err, &verrs))
		require.Len(t, verrs, 2)
		assert.Equal(t, "required", verrs[0].Tag)
		assert.Equal(t, "email", verrs[1].Tag)
		assert.Equal(t, "name is required", verrs.Fields()["name"])
		assert.Equal(t, "email must be a valid email", verrs.Fields()["email"])
	})

	t.Run("max length message", func(t *testing.T) {
		err := ValidateStruct(sample{Name: "too long name", Email: "a@b.co"})

		require.Error(t, err)
		assert.Equal(t, "name must be at most 5 characters", err.Error())
	})
}
