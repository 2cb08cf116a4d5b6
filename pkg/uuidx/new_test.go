package uuidx

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	first, second := New(), New()
	assert.Equal(t, uuid.Version(7), first.Version())
	assert.Equal(t, uuid.RFC4122, first.Variant())
	assert.NotEqual(t, first, second)
	assert.LessOrEqual(t, first.String()[:13], second.String()[:13], "ids sort by creation time")
}
