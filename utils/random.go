// utils/random.go
package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const randomCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateRandomString returns n characters from an unambiguous charset.
func GenerateRandomString(n int) string {
	out := make([]byte, n)
	max := big.NewInt(int64(len(randomCharset)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("failed to read random bytes")
		}
		out[i] = randomCharset[idx.Int64()]
	}
	return string(out)
}

// GenerateInvoiceNumber builds a human-readable number like INV/2025-26/X4J2.
// The slashes are intentional and are sanitized only when building the
// download filename.
func GenerateInvoiceNumber(now time.Time) string {
	return fmt.Sprintf("INV/%s/%s", FiscalYear(now), GenerateRandomString(4))
}
