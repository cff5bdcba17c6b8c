package card

import (
	"crypto/rand"
	"io"
	"math/big"
	mrand "math/rand/v2"

	"community_cards/internal/logger"
)

// MaxCardID is the highest card number; ids are drawn from [1, MaxCardID].
const MaxCardID = 5000

// IDSource returns a uniform integer in [0, n).
type IDSource func(n int) int

// CryptoIDSource draws from crypto/rand.
func CryptoIDSource(n int) int {
	return intN(rand.Reader, n)
}

// intN draws from r and falls back to math/rand/v2 when r fails.
func intN(r io.Reader, n int) int {
	v, err := rand.Int(r, big.NewInt(int64(n)))
	if err != nil {
		logger.Warn("crypto rand failed, using math/rand", "error", err)
		return mrand.IntN(n)
	}
	return int(v.Int64())
}

// NewCardID draws a card number. Draws are independent and may collide;
// no registry of issued numbers is kept.
func NewCardID(src IDSource) int {
	if src == nil {
		src = CryptoIDSource
	}
	return src(MaxCardID) + 1
}
