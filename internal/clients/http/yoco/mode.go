package yoco

import "strings"

// Mode describes which Yoco environment a key pair targets.
type Mode string

const (
	ModeTest    Mode = "TEST"
	ModeLive    Mode = "LIVE"
	ModeMixed   Mode = "MIXED"
	ModeUnknown Mode = "UNKNOWN"
)

// KeyMode classifies a single key by its prefix.
func KeyMode(key string) Mode {
	key = strings.TrimSpace(key)
	switch {
	case strings.HasPrefix(key, "sk_test_"), strings.HasPrefix(key, "pk_test_"):
		return ModeTest
	case strings.HasPrefix(key, "sk_live_"), strings.HasPrefix(key, "pk_live_"):
		return ModeLive
	default:
		return ModeUnknown
	}
}

// DetectMode classifies a secret/public key pair. An empty public key is ignored.
func DetectMode(secretKey, publicKey string) Mode {
	secret := KeyMode(secretKey)
	if strings.TrimSpace(publicKey) == "" {
		return secret
	}
	public := KeyMode(publicKey)
	if secret == public {
		return secret
	}
	if secret == ModeUnknown || public == ModeUnknown {
		return ModeUnknown
	}
	return ModeMixed
}

// MaskKey keeps the first 12 characters of a key for display.
func MaskKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 12 {
		return key
	}
	return key[:12] + "..."
}
