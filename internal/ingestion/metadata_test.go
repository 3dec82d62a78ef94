package ingestion

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata_JSONMarshaling(t *testing.T) {
	metadata := &Metadata{
		Source:    "resume.pdf",
		Kind:      KindPDF,
		Timestamp: "2024-01-01T00:00:00Z",
		Hash:      "abcd1234",
		Chars:     420,
	}

	jsonBytes, err := metadata.ToJSON()
	require.NoError(t, err)
	assert.NotEmpty(t, jsonBytes)

	var unmarshaled Metadata
	err = json.Unmarshal(jsonBytes, &unmarshaled)
	require.NoError(t, err)
	assert.Equal(t, metadata.Source, unmarshaled.Source)
	assert.Equal(t, metadata.Kind, unmarshaled.Kind)
	assert.Equal(t, metadata.Timestamp, unmarshaled.Timestamp)
	assert.Equal(t, metadata.Hash, unmarshaled.Hash)
	assert.Equal(t, metadata.Chars, unmarshaled.Chars)
}

func TestComputeHash(t *testing.T) {
	content1 := "test content"
	content2 := "different content"

	hash1 := computeHash(content1)
	hash2 := computeHash(content2)

	// SHA256 hex digests are 64 characters
	assert.Len(t, hash1, 64)
	assert.Len(t, hash2, 64)
	assert.NotEqual(t, hash1, hash2)

	hash1Again := computeHash(content1)
	assert.Equal(t, hash1, hash1Again)
}

func TestNewMetadata(t *testing.T) {
	content := "test content"
	source := "https://example.com/resume"

	metadata := NewMetadata(content, source)

	assert.Equal(t, source, metadata.Source)
	assert.NotEmpty(t, metadata.Timestamp)
	assert.Len(t, metadata.Hash, 64)
	assert.Equal(t, len(content), metadata.Chars)

	_, err := time.Parse(time.RFC3339, metadata.Timestamp)
	assert.NoError(t, err)

	assert.Equal(t, computeHash(content), metadata.Hash)
}

func TestNewMetadata_EmptySource(t *testing.T) {
	metadata := NewMetadata("test content", "")

	assert.Empty(t, metadata.Source)
	assert.NotEmpty(t, metadata.Timestamp)
	assert.NotEmpty(t, metadata.Hash)
}
