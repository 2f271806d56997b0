// Package generator picks hidden words for rounds.
package generator

import (
	"errors"
	"math/rand"
	"time"
)

// ErrNoWords is returned when picking from an empty list.
var ErrNoWords = errors.New("no words to pick from")

// Generator selects words uniformly at random.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed for reproducible picks.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Pick returns one word chosen uniformly from words.
func (g *Generator) Pick(words []string) (string, error) {
	if len(words) == 0 {
		return "", ErrNoWords
	}
	return words[g.rnd.Intn(len(words))], nil
}
