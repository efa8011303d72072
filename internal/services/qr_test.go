package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRServiceEncode(t *testing.T) {
	svc := NewQRService()

	png, err := svc.Encode("http://localhost:8080/player/alice")
	require.NoError(t, err)

	// PNG magic bytes.
	require.Greater(t, len(png), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}
