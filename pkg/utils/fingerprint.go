package utils

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint retorna o hash blake2b-256 das partes informadas, em hexadecimal.
// As mesmas partes, na mesma ordem, sempre produzem a mesma impressão digital.
func Fingerprint(parts ...[]byte) string {
	h, _ := blake2b.New256(nil)
	for _, part := range parts {
		h.Write(part)
	}
	return hex.EncodeToString(h.Sum(nil))
}
