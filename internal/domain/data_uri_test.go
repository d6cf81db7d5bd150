package domain

import (
	"bytes"
	"encoding/base64"
	"testing"
)

func TestDecodeDataURI(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47}
	raw := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	asset, err := DecodeDataURI(raw, DefaultImageMIME)
	if err != nil {
		t.Fatalf("DecodeDataURI: %v", err)
	}
	if asset.MIMEType != "image/png" {
		t.Fatalf("unexpected mime: %q", asset.MIMEType)
	}
	if !bytes.Equal(asset.Data, payload) {
		t.Fatalf("unexpected payload: %v", asset.Data)
	}
}

func TestDecodeDataURIMalformedPrefixFallsBack(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("sound"))

	cases := []struct {
		name string
		raw  string
	}{
		{"missing scheme", "audio/webm;base64," + encoded},
		{"missing encoding suffix", "data:audio/webm," + encoded},
		{"empty mime", "data:;base64," + encoded},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			asset, err := DecodeDataURI(tc.raw, DefaultAudioMIME)
			if err != nil {
				t.Fatalf("DecodeDataURI: %v", err)
			}
			if asset.MIMEType != DefaultAudioMIME {
				t.Fatalf("expected fallback mime, got %q", asset.MIMEType)
			}
		})
	}
}

func TestDecodeDataURIRejectsBadInput(t *testing.T) {
	if _, err := DecodeDataURI("no separator here", DefaultImageMIME); err == nil {
		t.Fatal("expected error for payload without separator")
	}
	if _, err := DecodeDataURI("data:image/png;base64,!!!not-base64!!!", DefaultImageMIME); err == nil {
		t.Fatal("expected error for non-base64 payload")
	}
}
