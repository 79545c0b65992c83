package random

import (
	"crypto/rand"
	"math/big"

	"github.com/myrjola/interrogation-room/internal/errors"
)

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")

// Letters returns a cryptographically random string of n letters.
func Letters(n uint) (string, error) {
	out := make([]rune, n)
	max := big.NewInt(int64(len(letters)))
	for i := range out {
		index, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", errors.Wrap(err, "read random int")
		}
		out[i] = letters[index.Int64()]
	}
	return string(out), nil
}
