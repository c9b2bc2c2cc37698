// Package hashutil implements keyed hashes, cover-art hashes and random
// strings used for web service authentication.
package hashutil

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"errors"
	"fmt"
	"hash"
	"strings"
)

// BlockSize is the HMAC block size shared by SHA-1, SHA-256 and MD5
const BlockSize = 64

// HMAC padding bytes
const (
	innerPad = 0x36
	outerPad = 0x5c
)

// ErrKeyTooLong is returned for keys longer than BlockSize. Callers must hash
// such keys first.
var ErrKeyTooLong = errors.New("hmac key longer than block size")

// Algorithm selects the hash primitive
type Algorithm int

const (
	SHA1 Algorithm = iota
	SHA256
	MD5
)

// String returns the algorithm name
func (a Algorithm) String() string {
	switch a {
	case SHA1:
		return "sha1"
	case SHA256:
		return "sha256"
	case MD5:
		return "md5"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// New returns a fresh hash for the algorithm
func (a Algorithm) New() (hash.Hash, error) {
	switch a {
	case SHA1:
		return sha1.New(), nil
	case SHA256:
		return sha256.New(), nil
	case MD5:
		return md5.New(), nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm: %s", a)
	}
}

// ParseAlgorithm maps a name such as "sha256" or "SHA-256" to an Algorithm
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ReplaceAll(strings.ToLower(name), "-", "") {
	case "sha1":
		return SHA1, nil
	case "sha256":
		return SHA256, nil
	case "md5":
		return MD5, nil
	default:
		return 0, fmt.Errorf("unknown hash algorithm: %s", name)
	}
}

// HMAC computes H((K ^ opad) || H((K ^ ipad) || data)) with a zero-padded
// key of at most BlockSize bytes.
func HMAC(key, data []byte, alg Algorithm) ([]byte, error) {
	if len(key) > BlockSize {
		return nil, fmt.Errorf("%d bytes: %w", len(key), ErrKeyTooLong)
	}

	inner, err := alg.New()
	if err != nil {
		return nil, err
	}
	outer, _ := alg.New()

	var ipad, opad [BlockSize]byte
	for i := range ipad {
		ipad[i] = innerPad
		opad[i] = outerPad
	}
	for i, b := range key {
		ipad[i] ^= b
		opad[i] ^= b
	}

	inner.Write(ipad[:])
	inner.Write(data)

	outer.Write(opad[:])
	outer.Write(inner.Sum(nil))
	return outer.Sum(nil), nil
}

// HMACSHA256 is HMAC with SHA-256
func HMACSHA256(key, data []byte) ([]byte, error) {
	return HMAC(key, data, SHA256)
}

// HMACSHA1 is HMAC with SHA-1
func HMACSHA1(key, data []byte) ([]byte, error) {
	return HMAC(key, data, SHA1)
}

// HMACMD5 is HMAC with MD5
func HMACMD5(key, data []byte) ([]byte, error) {
	return HMAC(key, data, MD5)
}

// SHA1CoverHash identifies album art by the lowercased artist and album
func SHA1CoverHash(artist, album string) []byte {
	h := sha1.New()
	h.Write([]byte(strings.ToLower(artist)))
	h.Write([]byte(strings.ToLower(album)))
	return h.Sum(nil)
}
