package ocr

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// hexSHA256 returns the lowercase hex digest of msg.
func hexSHA256(msg string) string {
	sum := sha256.Sum256([]byte(msg))
	return hex.EncodeToString(sum[:])
}

// hmacSHA256 returns the raw HMAC-SHA256 of msg under key.
func hmacSHA256(key []byte, msg string) []byte {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(msg))
	return h.Sum(nil)
}
