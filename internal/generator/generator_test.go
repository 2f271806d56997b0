package generator

import (
	"errors"
	"testing"
)

func TestPickEmpty(t *testing.T) {
	if _, err := New().Pick(nil); !errors.Is(err, ErrNoWords) {
		t.Fatalf("expected ErrNoWords, got %v", err)
	}
}

func TestPickCoversAllWords(t *testing.T) {
	words := []string{"chat", "chien", "oiseau"}
	g := NewSeeded(1)
	seen := map[string]int{}
	for i := 0; i < 300; i++ {
		w, err := g.Pick(words)
		if err != nil {
			t.Fatalf("pick: %v", err)
		}
		seen[w]++
	}
	for _, w := range words {
		if seen[w] == 0 {
			t.Fatalf("expected %q to be picked at least once: %v", w, seen)
		}
	}
}

func TestPickSeededIsReproducible(t *testing.T) {
	words := []string{"a", "b", "c", "d", "e"}
	a, b := NewSeeded(42), NewSeeded(42)
	for i := 0; i < 20; i++ {
		wa, _ := a.Pick(words)
		wb, _ := b.Pick(words)
		if wa != wb {
			t.Fatalf("expected identical picks at step %d: %q vs %q", i, wa, wb)
		}
	}
}
