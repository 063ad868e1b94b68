package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap_PreservesSentinel(t *testing.T) {
	err := Wrap(ErrBusy, "submit rejected")
	assert.True(t, stderrors.Is(err, ErrBusy))
	assert.Equal(t, "submit rejected: a transcription is already in progress", err.Error())

	outer := fmt.Errorf("tui: %w", err)
	assert.True(t, stderrors.Is(outer, ErrBusy))
	assert.False(t, stderrors.Is(outer, ErrUnknownProvider))
}

func TestWrap_Nil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ignored"))
	assert.Nil(t, Wrapf(nil, "ignored %d", 1))
}

func TestNotFound(t *testing.T) {
	err := NotFound("transcription", "abc")
	assert.True(t, stderrors.Is(err, ErrNotFound))
	assert.Equal(t, "transcription abc: not found", err.Error())
}
