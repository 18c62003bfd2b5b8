package service

import "math/rand/v2"

// SystemRandom draws from the goroutine-safe top-level math/rand/v2 source.
type SystemRandom struct{}

func (SystemRandom) IntN(n int) int {
	return rand.IntN(n)
}
