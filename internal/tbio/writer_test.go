package tbio

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{ err error }

func (f failingWriter) Write(p []byte) (int, error) { return 0, f.err }

func TestErrWriterStaysStickyAfterFirstError(t *testing.T) {
	want := errors.New("disk full")
	w := NewErrWriter(failingWriter{err: want})

	_, err := w.Write([]byte("a"))
	require.Error(t, err)
	require.ErrorIs(t, err, want)

	n, err2 := w.Write([]byte("b"))
	assert.Equal(t, 0, n)
	assert.Same(t, err, err2, "second Write should return the same sticky error")
}

func TestErrWriterPassesThroughOnSuccess(t *testing.T) {
	var buf bytes.Buffer
	w := NewErrWriter(&buf)

	n, err := w.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", buf.String())
	assert.NoError(t, w.Err)
}

func TestFormatNumberZero(t *testing.T) {
	assert.Equal(t, "0", FormatNumber(0, 0))
	assert.Equal(t, "0.00", FormatNumber(0, 2))
}

func TestFormatNumberClampsPrecision(t *testing.T) {
	assert.Equal(t, FormatNumber(1.0/3.0, 6), FormatNumber(1.0/3.0, 9))
	assert.Equal(t, FormatNumber(4, 0), FormatNumber(4, -3))
}

func TestFormatNumberRoundingAndSign(t *testing.T) {
	assert.Equal(t, "0.25", FormatNumber(0.25, 2))
	assert.Equal(t, "-0.25", FormatNumber(-0.25, 2))
	assert.Equal(t, "2", FormatNumber(1.5, 0))
}
