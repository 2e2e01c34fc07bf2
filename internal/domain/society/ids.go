package society

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	invitePrefix     = "INV-"
	inviteCodeLength = 6

	// Confusable characters (0/O, 1/I) are excluded; codes are typed by hand.
	inviteAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// NewID returns a unique opaque identifier for any ledger entity.
func NewID() string {
	return uuid.NewString()
}

// NewInviteCode returns a short human-typed token such as "INV-7KQ2MX".
// Uniqueness is probabilistic; callers reject collisions against codes
// already present in the apartment.
func NewInviteCode() (string, error) {
	max := big.NewInt(int64(len(inviteAlphabet)))

	var builder strings.Builder
	builder.Grow(len(invitePrefix) + inviteCodeLength)
	builder.WriteString(invitePrefix)

	for i := 0; i < inviteCodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		builder.WriteByte(inviteAlphabet[n.Int64()])
	}

	return builder.String(), nil
}
