// Package checksum fingerprints content documents for change detection.
package checksum

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
)

// Document returns the hex SHA-256 fingerprint of a source file. The path is
// part of the digest, so moving a file between kind directories yields a new
// value even when the bytes are unchanged.
func Document(path string, data []byte) string {
	h := sha256.New()
	writePart(h, []byte(path))
	writePart(h, data)
	return hex.EncodeToString(h.Sum(nil))
}

// writePart length-prefixes each part so ("ab","c") and ("a","bc") differ.
func writePart(h hash.Hash, b []byte) {
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], uint64(len(b)))
	h.Write(n[:])
	h.Write(b)
}
