package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator(t *testing.T) {
	v := New()
	assert.True(t, v.Valid())

	v.Check(true, "title", "must be provided")
	assert.True(t, v.Valid())

	v.Check(false, "title", "must be provided")
	assert.False(t, v.Valid())
	assert.Equal(t, "must be provided", v.Errors["title"])

	// The first error for a field wins.
	v.AddError("title", "a different message")
	assert.Equal(t, "must be provided", v.Errors["title"])
}

func TestIn(t *testing.T) {
	assert.True(t, In("watched", "watched", "unwatched"))
	assert.False(t, In("queued", "watched", "unwatched"))
	assert.False(t, In("watched"))
}
