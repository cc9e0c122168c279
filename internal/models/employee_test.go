package models_test

import (
	"testing"

	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestEmployeeEqual(t *testing.T) {
	t.Parallel()

	base := models.Employee{ID: 1, FirstName: "Jane", LastName: "Doe", Email: "jane@x.com"}

	t.Run("ignores identifier", func(t *testing.T) {
		t.Parallel()
		other := base
		other.ID = 42

		assert.True(t, base.Equal(other))
		assert.True(t, other.Equal(base))
	})

	t.Run("differs by first name", func(t *testing.T) {
		t.Parallel()
		other := base
		other.FirstName = "John"

		assert.False(t, base.Equal(other))
	})

	t.Run("differs by last name", func(t *testing.T) {
		t.Parallel()
		other := base
		other.LastName = "Smith"

		assert.False(t, base.Equal(other))
	})

	t.Run("differs by email", func(t *testing.T) {
		t.Parallel()
		other := base
		other.Email = "jane@y.com"

		assert.False(t, base.Equal(other))
	})
}
