package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Default MIME types used when a data URI carries a malformed or missing
// prefix. These match what the generation flows emit for each asset.
const (
	DefaultImageMIME = "image/png"
	DefaultAudioMIME = "audio/webm"
)

// BinaryAsset is a decoded binary payload ready for upload.
type BinaryAsset struct {
	MIMEType string
	Data     []byte
}

// DecodeDataURI decodes a self-describing "data:<mime>;base64,<bytes>"
// payload. A malformed MIME prefix falls back to defaultMIME; a payload that
// is not base64 at all is an error.
func DecodeDataURI(raw, defaultMIME string) (BinaryAsset, error) {
	comma := strings.Index(raw, ",")
	if comma < 0 {
		return BinaryAsset{}, fmt.Errorf("data URI has no payload separator")
	}

	mime := defaultMIME
	prefix := raw[:comma]
	if strings.HasPrefix(prefix, "data:") && strings.HasSuffix(prefix, ";base64") {
		if m := strings.TrimSuffix(strings.TrimPrefix(prefix, "data:"), ";base64"); m != "" {
			mime = m
		}
	}

	data, err := base64.StdEncoding.DecodeString(raw[comma+1:])
	if err != nil {
		return BinaryAsset{}, fmt.Errorf("decode base64 payload: %w", err)
	}
	return BinaryAsset{MIMEType: mime, Data: data}, nil
}
