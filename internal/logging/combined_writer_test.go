package logging

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestCombinedWriter_Write(t *testing.T) {
	sb1 := &strings.Builder{}
	sb1.WriteString("already-here|")
	sb2 := &strings.Builder{}

	cw := NewCombinedWriter(sb1, nil, sb2)
	require.NotNil(t, cw)
	assert.Len(t, cw.Writers, 2)

	for _, msg := range []string{"squat 5x5", " bench 3x8"} {
		n, err := cw.Write([]byte(msg))
		require.NoError(t, err)
		assert.Equal(t, len(msg), n)
	}

	assert.Equal(t, "already-here|squat 5x5 bench 3x8", sb1.String())
	assert.Equal(t, "squat 5x5 bench 3x8", sb2.String())
}

func TestCombinedWriter_Write_WithError(t *testing.T) {
	sb := &strings.Builder{}
	cw := NewCombinedWriter(&faultyWriter{msg: "disk full"}, sb, &faultyWriter{msg: "closed pipe"})

	msg := "deadlift 1x3"
	n, err := cw.Write([]byte(msg))
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.ErrorContains(t, err, "disk full")
	assert.ErrorContains(t, err, "closed pipe")

	// written only to the string builder
	assert.Equal(t, len(msg), n)
	assert.Equal(t, msg, sb.String())
}

type faultyWriter struct {
	msg string
}

func (fw *faultyWriter) Write([]byte) (int, error) {
	return 0, errors.New(fw.msg)
}
