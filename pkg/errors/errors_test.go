package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapAndIsCode(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := Wrap(CodeRenderError, "render failed", cause)

	require.True(t, IsCode(err, CodeRenderError))
	require.False(t, IsCode(err, CodeInvalidInput))
	require.ErrorIs(t, err, cause)
	require.Equal(t, "render failed: boom", err.Error())
}

func TestCodeOfWrappedChain(t *testing.T) {
	err := fmt.Errorf("outer: %w", Wrap(CodeInvalidInput, "bad years", nil))

	require.Equal(t, CodeInvalidInput, CodeOf(err))
	require.Equal(t, "", CodeOf(fmt.Errorf("plain")))
}
