package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	out, err := String{}.Parse("  Hello, world!  ")
	require.NoError(t, err)
	assert.Equal(t, "  Hello, world!  ", out)
}

func TestBoolean(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"true", true},
		{"True", true},
		{" YES \n", true},
		{"sì", true},
		{"si", true},
		{"1", true},
		{"false", false},
		{"no", false},
		{"yes, the sky is blue", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Boolean{}.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDate(t *testing.T) {
	t.Run("bare date", func(t *testing.T) {
		got, err := Date{}.Parse("2024-06-15")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("date in a sentence", func(t *testing.T) {
		got, err := Date{}.Parse("Today is 2024-06-15, a Saturday.")
		require.NoError(t, err)
		assert.Equal(t, 15, got.Day())
	})

	t.Run("no date", func(t *testing.T) {
		_, err := Date{}.Parse("I don't know what day it is")
		assert.ErrorIs(t, err, ErrNoDate)
	})

	t.Run("impossible date", func(t *testing.T) {
		_, err := Date{}.Parse("2024-13-45")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNoDate)
	})
}

func TestFunc(t *testing.T) {
	upper := Func[int](func(s string) (int, error) { return len(s), nil })
	n, err := upper.Parse("four")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}
