package errorx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundSeesCodedErrorsOnly(t *testing.T) {
	coded := Wrap(errors.New("record not found"), CodeNotFound, "find user")
	assert.True(t, IsNotFound(coded))
	assert.True(t, IsNotFound(fmt.Errorf("load profile: %w", coded)))

	// Everything the dao layer did not code stays invisible, including
	// messages that merely look like the gorm sentinel.
	assert.False(t, IsNotFound(errors.New("record not found")))
	assert.False(t, IsNotFound(New(CodeForbidden, "not yours")))
	assert.False(t, IsNotFound(nil))
}

func TestGetCodeFallsBackToServerBusy(t *testing.T) {
	assert.Equal(t, CodeConflict, GetCode(New(CodeConflict, "already friends")))
	assert.Equal(t, CodeServerBusy, GetCode(errors.New("plain")))
}
