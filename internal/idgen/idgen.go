// Package idgen generates provider-style identifiers for simulated
// transactions. All randomness comes from crypto/rand; generators hold no
// state and are safe for concurrent use.
package idgen

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	uppercaseLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits           = "0123456789"
)

// TransactionID returns prefix followed by 12 uppercase hex characters.
func TransactionID(prefix string) string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; fall back to a
		// UUID-derived suffix rather than returning an error nobody can act on.
		return prefix + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
	}
	return prefix + strings.ToUpper(hex.EncodeToString(buf))
}

// CheckoutRequestID returns a checkout correlation id embedding the current
// timestamp, in the provider's ws_CO_ format.
func CheckoutRequestID() string {
	return "ws_CO_" + time.Now().Format("02012006150405") + randomString(digits, 6)
}

// MerchantRequestID returns a merchant-side correlation id.
func MerchantRequestID() string {
	return uuid.NewString()
}

// Receipt returns a provider-style receipt number: two uppercase letters
// followed by eight digits.
func Receipt() string {
	return randomString(uppercaseLetters, 2) + randomString(digits, 8)
}

// BankReference returns a bank reference embedding a YYMMDD date stamp and
// a six-digit random suffix.
func BankReference() string {
	return "FT" + time.Now().Format("060102") + randomString(digits, 6)
}

func randomString(alphabet string, n int) string {
	var b strings.Builder
	b.Grow(n)
	max := big.NewInt(int64(len(alphabet)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			b.WriteByte(alphabet[0])
			continue
		}
		b.WriteByte(alphabet[idx.Int64()])
	}
	return b.String()
}
