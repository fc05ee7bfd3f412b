package logging

import (
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestCombinedWriter_Write(t *testing.T) {
	sb1 := &strings.Builder{}
	sb1.WriteString("already-here")
	sb2 := &strings.Builder{}

	cw := NewCombinedWriter(sb1, sb2)
	require.Len(t, cw.Writers, 2)

	n, err := cw.Write([]byte("bench 80x8"))
	require.NoError(t, err)
	assert.Equal(t, len("bench 80x8")*2, n)

	assert.Equal(t, "already-herebench 80x8", sb1.String())
	assert.Equal(t, "bench 80x8", sb2.String())
}

func TestCombinedWriter_Write_CollectsErrors(t *testing.T) {
	sb := &strings.Builder{}
	cw := NewCombinedWriter(faultyWriter{"disk full"}, sb, faultyWriter{"closed"})

	n, err := cw.Write([]byte("squat"))
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.Equal(t, len("squat"), n)
	assert.Equal(t, "squat", sb.String())
}

func TestGetLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, GetLevel("DEBUG"))
	assert.Equal(t, logrus.WarnLevel, GetLevel("warning"))
	assert.Equal(t, logrus.ErrorLevel, GetLevel("error"))
	assert.Equal(t, logrus.InfoLevel, GetLevel(""))
	assert.Equal(t, logrus.InfoLevel, GetLevel("nonsense"))
}

type faultyWriter struct{ msg string }

func (fw faultyWriter) Write([]byte) (int, error) {
	return 0, errors.New(fw.msg)
}
