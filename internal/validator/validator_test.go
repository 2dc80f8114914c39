package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatorKeepsFirstMessagePerField(t *testing.T) {
	v := New()
	v.CheckNotBlank("  ", "title", "must be provided")
	v.Check(false, "title", "second message")

	assert.False(t, v.IsValid())
	assert.Equal(t, "must be provided", v.Errors["title"])
}

func TestCheckEmail(t *testing.T) {
	v := New()
	v.CheckEmail("jake@jake.jake", "must be a valid email address")
	assert.True(t, v.IsValid())

	v.CheckEmail("not-an-email", "must be a valid email address")
	assert.Equal(t, "must be a valid email address", v.Errors["email"])
}

func TestIsUnique(t *testing.T) {
	v := New()
	assert.True(t, v.IsUnique([]string{"go", "sql"}))
	assert.False(t, v.IsUnique([]string{"go", "go"}))
}
