package randsrc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeededSourcesRepeat(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
		assert.Equal(t, a.Intn(100), b.Intn(100))
	}
}

func TestScripted(t *testing.T) {
	s := NewScripted(0.1, 0.99)
	assert.Equal(t, 0.1, s.Float64())
	assert.Equal(t, 9, s.Intn(10))
	// cycles back to 0.1
	assert.Equal(t, 1, s.Intn(10))
	assert.Equal(t, 0, s.Intn(0))
	assert.Equal(t, 0.0, NewScripted().Float64())
}
