// Package fingerprint computes stable content fingerprints for generated
// files. The fingerprint covers the input source and the resolved options,
// so regeneration can be skipped when neither changed.
package fingerprint

import (
	"encoding/hex"
	"regexp"

	"golang.org/x/crypto/blake2b"
)

// size is the digest length in bytes. 16 bytes is plenty for change
// detection and keeps the header line short.
const size = 16

// Sum returns the hex fingerprint of the given parts. Parts are separated
// by a zero byte so that ("ab","c") and ("a","bc") hash differently.
func Sum(parts ...[]byte) string {
	h, _ := blake2b.New(size, nil)
	for i, p := range parts {
		if i > 0 {
			h.Write([]byte{0})
		}
		h.Write(p)
	}
	return hex.EncodeToString(h.Sum(nil))
}

var headerRe = regexp.MustCompile(`(?m)^// fingerprint: ([0-9a-f]+)$`)

// FromHeader extracts the fingerprint recorded in a previously generated
// file. ok is false when the content carries no fingerprint line.
func FromHeader(content []byte) (fp string, ok bool) {
	m := headerRe.FindSubmatch(content)
	if m == nil {
		return "", false
	}
	return string(m[1]), true
}
