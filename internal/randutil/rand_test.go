package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	a, b := New(123), New(123)
	for i := 0; i < 16; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestNearbySeedsDiffer(t *testing.T) {
	assert.NotEqual(t, New(1).Uint64(), New(2).Uint64())
}
