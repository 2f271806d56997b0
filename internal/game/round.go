// Package game implements the hangman round state machine.
package game

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/text/unicode/norm"

	"github.com/verte-zerg/hangman/internal/matcher"
	"github.com/verte-zerg/hangman/internal/model"
	"github.com/verte-zerg/hangman/internal/store"
)

// DefaultAttempts is the attempt budget used when none is configured.
const DefaultAttempts = 12

var (
	// ErrDictionaryNotFound is returned by Start for an unknown dictionary.
	ErrDictionaryNotFound = errors.New("dictionary not found")
	// ErrEmptyDictionary is returned by Start when the dictionary has no words.
	ErrEmptyDictionary = errors.New("dictionary is empty")
	// ErrInvalidState is returned by Submit once the round is over.
	ErrInvalidState = errors.New("round is already over")
)

// DictionarySource provides word lists by dictionary identifier.
type DictionarySource interface {
	Words(ctx context.Context, id string) ([]string, error)
}

// Picker selects one word from a list.
type Picker interface {
	Pick(words []string) (string, error)
}

// Round holds the state of a single round.
type Round struct {
	word       string
	normalized string
	tracker    string
	attempts   int
	proposals  map[string]struct{}
	outcome    model.Outcome
}

// Start picks a word from the dictionary and returns a round awaiting guesses.
func Start(ctx context.Context, src DictionarySource, picker Picker, dictionaryID string, attempts int) (*Round, error) {
	words, err := src.Words(ctx, dictionaryID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrDictionaryNotFound, dictionaryID)
		}
		return nil, fmt.Errorf("failed to load dictionary %s: %w", dictionaryID, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDictionary, dictionaryID)
	}
	word, err := picker.Pick(words)
	if err != nil {
		return nil, fmt.Errorf("failed to pick word: %w", err)
	}
	return New(word, attempts), nil
}

// New returns a round for a known word. A non-positive budget selects
// DefaultAttempts.
func New(word string, attempts int) *Round {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	word = norm.NFC.String(word)
	return &Round{
		word:       word,
		normalized: matcher.Normalize(word),
		tracker:    matcher.InitialTracker(word),
		attempts:   attempts,
		proposals:  map[string]struct{}{},
		outcome:    model.Pending,
	}
}

// Submit applies one guess and returns the resulting report.
//
// A non-alphabetic guess costs an attempt without being recorded. A guess
// already proposed this round is ignored. The win check runs before the
// loss check.
func (r *Round) Submit(guess string) (model.Report, error) {
	if r.outcome != model.Pending {
		return r.Report(), ErrInvalidState
	}

	if !matcher.IsAlpha(guess) {
		r.attempts--
	} else if _, seen := r.proposals[guess]; !seen {
		r.attempts--
		r.proposals[guess] = struct{}{}
		r.tracker = matcher.UpdateTracker(r.word, r.normalized, r.tracker, guess)
	}

	switch {
	case matcher.Revealed(r.word, r.tracker):
		r.outcome = model.Won
	case r.attempts <= 0:
		r.attempts = 0
		r.outcome = model.Lost
	}
	return r.Report(), nil
}

// Report returns the current state. The word is masked while pending.
func (r *Round) Report() model.Report {
	word := model.MaskedWord
	if r.outcome != model.Pending {
		word = r.word
	}
	return model.Report{
		Word:      word,
		Tracker:   r.tracker,
		Attempts:  r.attempts,
		Proposals: r.Proposals(),
		Outcome:   r.outcome,
	}
}

// Proposals returns the sorted set of accepted guesses.
func (r *Round) Proposals() []string {
	out := make([]string, 0, len(r.proposals))
	for p := range r.proposals {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Over reports whether the round reached a terminal state.
func (r *Round) Over() bool {
	return r.outcome != model.Pending
}

// Attempts returns the remaining attempt budget.
func (r *Round) Attempts() int {
	return r.attempts
}

// Lifecycle states of a round.
const (
	AwaitingGuess = model.Pending
	Won           = model.Won
	Lost          = model.Lost
)

// State returns the current lifecycle state.
func (r *Round) State() model.Outcome {
	return r.outcome
}
