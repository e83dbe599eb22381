package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"hash/fnv"
	"io"
	"strconv"
)

// Fingerprint derives a stable visitor key from the client IP and User-Agent.
// It is pure and must never fail: the counting path always needs some usable
// key. If the hash writer ever errors, a weaker composite of the IP and an
// FNV hash of the User-Agent is returned instead.
func Fingerprint(clientIP, userAgent string) string {
	h := sha256.New()
	if _, err := io.WriteString(h, clientIP+":"+userAgent); err != nil {
		return clientIP + "_" + fallbackHash(userAgent)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func fallbackHash(s string) string {
	f := fnv.New64a()
	_, _ = io.WriteString(f, s)
	return strconv.FormatUint(f.Sum64(), 16)
}
