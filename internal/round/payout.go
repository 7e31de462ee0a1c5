package round

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/shopspring/decimal"
)

// Payout returns floor(bet * multiplier) using exact decimal arithmetic,
// so 100 * 2.78 pays 278 rather than the 277 a float product would give.
func Payout(bet int, multiplier float64) int {
	return int(decimal.NewFromInt(int64(bet)).
		Mul(decimal.NewFromFloat(multiplier)).
		Floor().
		IntPart())
}

// Commit returns the hex SHA-256 commitment of a salted layout set.
// Published when the game starts, it lets the player check after the game
// that the layouts were not changed while playing.
func Commit(salt string, ls Layouts) string {
	sum := sha256.Sum256([]byte(salt + "|" + ls.Encode()))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether the revealed salt and layouts match a commitment.
func Verify(commitment, salt string, ls Layouts) bool {
	return Commit(salt, ls) == commitment
}
