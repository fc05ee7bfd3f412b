package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	for _, email := range []string{"a@b.co", "lifter@gym.example.com", "x.y+z@q.io"} {
		assert.NoError(t, ValidateEmail(email), email)
	}
	for _, email := range []string{"", "not-an-email", "a@b", "a b@c.d", "@b.co", "a@.co ", "a@@b.co"} {
		assert.ErrorIs(t, ValidateEmail(email), ErrInvalidEmail, email)
	}
}

func TestParseWeek(t *testing.T) {
	week, err := ParseWeek("3")
	require.NoError(t, err)
	assert.Equal(t, 3, week)

	week, err = ParseWeek(" 12 ")
	require.NoError(t, err)
	assert.Equal(t, 12, week)

	for _, raw := range []string{"", "0", "-1", "abc", "2.5", "3abc"} {
		_, err := ParseWeek(raw)
		assert.ErrorIs(t, err, ErrInvalidWeek, raw)
	}
}
