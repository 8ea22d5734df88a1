// Package reference generates short public booking codes.
package reference

import (
	"crypto/rand"
	"io"
	"math/big"
)

const (
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	Length   = 6
)

// Generator draws codes of Length characters from Alphabet. Uniqueness is
// left to the bookings.reference unique constraint.
type Generator struct {
	rand io.Reader
}

func NewGenerator() *Generator {
	return &Generator{rand: rand.Reader}
}

// NewGeneratorFrom uses r as the randomness source.
func NewGeneratorFrom(r io.Reader) *Generator {
	return &Generator{rand: r}
}

func (g *Generator) Generate() (string, error) {
	code := make([]byte, Length)
	max := big.NewInt(int64(len(Alphabet)))
	for i := range code {
		n, err := rand.Int(g.rand, max)
		if err != nil {
			return "", err
		}
		code[i] = Alphabet[n.Int64()]
	}
	return string(code), nil
}

func Valid(code string) bool {
	if len(code) != Length {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if !(c >= 'A' && c <= 'Z') && !(c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}
