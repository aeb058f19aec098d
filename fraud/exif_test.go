package fraud

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPhotoMetadataGarbageBytes(t *testing.T) {
	meta := ExtractPhotoMetadata([]byte("definitely not a jpeg"))

	assert.True(t, meta.Empty())
	assert.Nil(t, meta.GPS)
	assert.Nil(t, meta.CapturedAt)
}

func TestExtractPhotoMetadataEmptyInput(t *testing.T) {
	meta := ExtractPhotoMetadata(nil)

	assert.True(t, meta.Empty())
}
