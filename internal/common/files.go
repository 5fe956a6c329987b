package common

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
	"os"
)

// Hasher accumulates a SHA-256 digest over streamed writes.
type Hasher struct {
	h hash.Hash
}

func NewHasher() *Hasher {
	return &Hasher{h: sha256.New()}
}

func (h *Hasher) Write(p []byte) (int, error) {
	return h.h.Write(p)
}

func (h *Hasher) Sum() string {
	return hex.EncodeToString(h.h.Sum(nil))
}

// Sha256OfFile digests the file at path and reports its size in bytes.
func Sha256OfFile(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()
	h := NewHasher()
	n, err := io.Copy(h, f)
	if err != nil {
		return "", 0, err
	}
	return h.Sum(), n, nil
}
