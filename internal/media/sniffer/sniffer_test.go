package sniffer

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectHead(t *testing.T) {
	tests := []struct {
		name     string
		head     []byte
		expected MediaType
	}{
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0}, TypeJPEG},
		{"png", []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0x00}, TypePNG},
		{"gif", []byte("GIF89a......"), TypeGIF},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), TypeWEBP},
		{"svg", []byte(`<svg xmlns="http://www.w3.org/2000/svg">`), TypeSVG},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := DetectHead(tt.head)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.Type)
		})
	}
}

func TestDetectHeadUnknown(t *testing.T) {
	_, err := DetectHead([]byte("%PDF-1.4"))
	assert.ErrorIs(t, err, ErrUnknownType)

	_, err = DetectHead(nil)
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestMimeTypeFromHTTP(t *testing.T) {
	header := http.Header{}
	header.Set("Content-Type", "image/png; charset=binary")
	assert.Equal(t, "image/png", MimeTypeFromHTTP(header))

	assert.Equal(t, "", MimeTypeFromHTTP(http.Header{}))
}
