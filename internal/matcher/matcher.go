// Package matcher compares guesses to hidden words ignoring diacritics.
package matcher

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Placeholder marks an unrevealed position in a tracker.
const Placeholder = '_'

// Normalize strips combining marks after canonical decomposition.
// Case and non-letter characters are left untouched.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// IsSingleChar reports whether guess is exactly one code point.
func IsSingleChar(guess string) bool {
	return utf8.RuneCountInString(guess) == 1
}

// IsAlpha reports whether guess is non-empty and made of letters only.
// Combining marks are accepted when they follow a letter so decomposed
// input validates the same as its precomposed form.
func IsAlpha(guess string) bool {
	if guess == "" {
		return false
	}
	prevLetter := false
	for _, r := range guess {
		switch {
		case unicode.IsLetter(r):
			prevLetter = true
		case unicode.Is(unicode.Mn, r) && prevLetter:
		default:
			return false
		}
	}
	return true
}

// InitialTracker masks every letter of word and keeps the rest as solved.
func InitialTracker(word string) string {
	out := []rune(word)
	for i, r := range out {
		if unicode.IsLetter(r) {
			out[i] = Placeholder
		}
	}
	return string(out)
}

// UpdateTracker returns tracker with the positions matched by guess revealed.
// A single-character guess reveals each position whose normalized rune equals
// the normalized guess; a longer guess reveals the whole word when it matches
// normalizedWord. The comparison is case-sensitive.
func UpdateTracker(word, normalizedWord, tracker, guess string) string {
	if !IsSingleChar(guess) {
		if Normalize(guess) == normalizedWord {
			return word
		}
		return tracker
	}

	wordRunes := []rune(word)
	out := []rune(tracker)
	if len(out) != len(wordRunes) {
		return tracker
	}
	target := Normalize(guess)
	normRunes := []rune(normalizedWord)
	aligned := len(normRunes) == len(wordRunes)
	for i, r := range wordRunes {
		var candidate string
		if aligned {
			candidate = string(normRunes[i])
		} else {
			candidate = Normalize(string(r))
		}
		if candidate == target {
			out[i] = r
		}
	}
	return string(out)
}

// Revealed reports whether tracker fully matches word.
func Revealed(word, tracker string) bool {
	return word == tracker
}
