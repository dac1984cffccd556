package desktop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, int32(0), normalize(0, 1920))
	assert.Equal(t, int32(65535), normalize(1919, 1920))
	assert.Equal(t, int32(65535), normalize(5000, 1920))
	assert.Equal(t, int32(0), normalize(-5, 1920))
}
