package mrz

import (
	"math/rand/v2"
	"sync"
)

// CheckDigits computes the check digit of one MRZ field.
type CheckDigits interface {
	Digit(field string) byte
}

// ICAO computes Doc 9303 check digits: characters map to values (0-9 as
// themselves, A-Z as 10-35, everything else as 0), are weighted 7, 3, 1
// repeating, and the sum modulo 10 is the digit.
type ICAO struct{}

var weights = [3]int{7, 3, 1}

// Digit returns the check digit of field as an ASCII digit.
func (ICAO) Digit(field string) byte {
	sum := 0
	for i := 0; i < len(field); i++ {
		sum += charValue(field[i]) * weights[i%3]
	}
	return byte('0' + sum%10)
}

func charValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	default:
		return 0
	}
}

// Random returns uniformly random digits regardless of the field, as older
// documents did. It is safe for concurrent use.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom returns a Random strategy drawing from src. A nil src uses a
// randomly seeded PCG source.
func NewRandom(src rand.Source) *Random {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Random{rng: rand.New(src)}
}

// Digit returns a random ASCII digit.
func (r *Random) Digit(string) byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return byte('0' + r.rng.IntN(10))
}
