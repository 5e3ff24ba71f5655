package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordID(t *testing.T) {
	assert.Equal(t, "5", Record{"id": float64(5)}.ID())
	assert.Equal(t, "video_1_x", Record{"id": "video_1_x"}.ID())
	assert.Equal(t, "", Record{}.ID())
}

func TestRecordNumericID(t *testing.T) {
	n, ok := Record{"id": float64(5)}.NumericID()
	assert.True(t, ok)
	assert.Equal(t, int64(5), n)

	n, ok = Record{"id": "12"}.NumericID()
	assert.True(t, ok)
	assert.Equal(t, int64(12), n)

	_, ok = Record{"id": "video_1_x"}.NumericID()
	assert.False(t, ok)

	_, ok = Record{}.NumericID()
	assert.False(t, ok)
}
