package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint(t *testing.T) {
	key := make([]byte, KeySize)
	other := make([]byte, KeySize)
	other[0] = 1

	fp := Fingerprint(key)
	assert.Len(t, fp, 64)
	assert.Equal(t, fp, Fingerprint(key))
	assert.NotEqual(t, fp, Fingerprint(other))

	assert.NoError(t, VerifyFingerprint(key, fp))
	assert.ErrorIs(t, VerifyFingerprint(other, fp), ErrKeyMismatch)
	assert.ErrorIs(t, VerifyFingerprint(key, ""), ErrKeyMismatch)
}
