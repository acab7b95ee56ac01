package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteWithoutBackend(t *testing.T) {
	if Available() {
		t.Skip("clipboard backend installed")
	}
	assert.ErrorIs(t, Write("{}"), ErrUnavailable)
}
