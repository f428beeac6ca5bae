package crypto

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
)

// ErrKeyMismatch is returned when a key does not match the stored fingerprint.
var ErrKeyMismatch = errors.New("key does not match fingerprint")

var fingerprintContext = []byte("notesync/store-key/v1")

// Fingerprint returns a hex digest that identifies key without revealing it.
// The store keeps it next to the salt to detect a wrong passphrase early.
func Fingerprint(key []byte) string {
	h := sha256.New()
	h.Write(fingerprintContext)
	h.Write(key)
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyFingerprint checks key against a stored fingerprint.
func VerifyFingerprint(key []byte, fingerprint string) error {
	if subtle.ConstantTimeCompare([]byte(Fingerprint(key)), []byte(fingerprint)) != 1 {
		return ErrKeyMismatch
	}
	return nil
}
