package hashutil

import (
	"crypto/rand"
)

// Character sets for random strings
const (
	AlphaChars        = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	AlphanumericChars = AlphaChars + "0123456789"
	// URLSafeChars are the unreserved URI characters, as used for PKCE verifiers
	URLSafeChars = AlphanumericChars + "-._~"
)

// RandomString returns n bytes drawn uniformly from chars, which must hold
// between 1 and 256 single-byte characters.
func RandomString(n int, chars string) string {
	if n <= 0 || chars == "" || len(chars) > 256 {
		return ""
	}

	// Reject bytes past the last full multiple of len(chars) to avoid bias
	limit := 256 - 256%len(chars)
	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		rand.Read(buf)
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, chars[int(b)%len(chars)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out)
}

// RandomAlphaString returns n random ASCII letters
func RandomAlphaString(n int) string {
	return RandomString(n, AlphaChars)
}

// RandomAlphanumericString returns n random ASCII letters and digits
func RandomAlphanumericString(n int) string {
	return RandomString(n, AlphanumericChars)
}

// CryptographicRandomString returns n random unreserved URI characters
func CryptographicRandomString(n int) string {
	return RandomString(n, URLSafeChars)
}
