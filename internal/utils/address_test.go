package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAddress(t *testing.T) {
	assert.Equal(t, "0x1234...cdef", FormatAddress("0x1234567890abcdef1234567890abcdef1234cdef"))
	assert.Equal(t, "0xshort", FormatAddress("0xshort"))
}

func TestNormalizeAddress(t *testing.T) {
	assert.Equal(t, "0xabcdef", NormalizeAddress("  0xAbCdEf "))
}
