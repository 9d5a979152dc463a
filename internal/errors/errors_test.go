package errors_test

import (
	"errors"
	"testing"

	aerrors "abstractobject/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCarriesOpAndMessage(t *testing.T) {
	err := aerrors.New("setValue", "boom")
	assert.Equal(t, "setValue", err.Op)
	assert.Equal(t, "boom", err.Message)
	assert.Contains(t, err.Error(), "setValue")
	assert.Contains(t, err.Error(), "boom")
}

func TestNewfFormatsMessage(t *testing.T) {
	err := aerrors.Newf("getValue", "unrecognized tag %d", 7)
	assert.Equal(t, "unrecognized tag 7", err.Message)
}

func TestIsAWorksThroughStandardErrors(t *testing.T) {
	var target *aerrors.AnalysisInvariantViolation
	wrapped := errors.New("wrapper")
	assert.False(t, errors.As(wrapped, &target))

	err := aerrors.New("op", "msg")
	require.True(t, errors.As(error(err), &target))
	assert.Same(t, err, target)
}

func TestReporterFormatIncludesSourceWhenSet(t *testing.T) {
	err := aerrors.New("setDefaultArrayProperty", "bad default")
	withSource := aerrors.NewReporter("trace.aoc").Format(err)
	assert.Contains(t, withSource, "trace.aoc")
	assert.Contains(t, withSource, "setDefaultArrayProperty")

	withoutSource := aerrors.NewReporter("").Format(err)
	assert.NotContains(t, withoutSource, "-->")
}
