package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRounding(t *testing.T) {
	assert.Equal(t, 1.01, Round2(1.005))
	assert.Equal(t, 33.0, Round2(32.999))
	assert.Equal(t, 12.3, Round1(12.34))
	assert.Equal(t, -4.5, Round1(-4.46))
}

func TestFixed2AndParse(t *testing.T) {
	assert.Equal(t, "149.50", Fixed2(149.5))
	assert.Equal(t, "0.00", Fixed2(0))

	v, err := Parse(Fixed2(89.99))
	require.NoError(t, err)
	assert.Equal(t, 89.99, v)

	_, err = Parse("$12")
	assert.Error(t, err)
}
