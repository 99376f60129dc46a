package convert

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntToInt32Clamped(t *testing.T) {
	tests := []struct {
		in   int
		want int32
	}{
		{0, 0},
		{25, 25},
		{-7, -7},
		{math.MaxInt32 + 1, math.MaxInt32},
		{math.MinInt32 - 1, math.MinInt32},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IntToInt32Clamped(tt.in), "input %d", tt.in)
	}
}

func TestIntToUint32Clamped(t *testing.T) {
	assert.Equal(t, uint32(5), IntToUint32Clamped(5))
	assert.Equal(t, uint32(0), IntToUint32Clamped(-1))
	assert.Equal(t, uint32(math.MaxUint32), IntToUint32Clamped(math.MaxUint32+10))
}
