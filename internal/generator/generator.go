// Copyright (c) 2025 Khalid Sakr
// Elsakr Password Vault - local encrypted credential manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package generator produces passwords and passphrases from a configurable
// policy. All randomness comes from crypto/rand; a non-cryptographic source
// would silently undermine every secret this program creates, so there is
// deliberately no fallback.
package generator

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	upperChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars = "abcdefghijklmnopqrstuvwxyz"
	digitChars = "0123456789"

	// SymbolChars is the symbol class offered by the generator and checked
	// by the strength estimator. Keep the two in sync.
	SymbolChars = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	// ambiguousChars are visually confusable and removed when the policy
	// asks for it.
	ambiguousChars = "0O1lI"
)

// wordList backs passphrase generation. Membership is not security
// sensitive; uniform selection is.
var wordList = []string{
	"apple", "banana", "cherry", "dragon", "eagle", "forest", "galaxy",
	"harbor", "island", "jungle", "kingdom", "lemon", "mountain", "nebula",
	"ocean", "phoenix", "quantum", "rainbow", "sunset", "thunder", "universe",
	"velvet", "whisper", "xenon", "yellow", "zenith", "aurora", "breeze",
	"crystal", "diamond", "ember", "flame", "glacier", "horizon", "ivory",
}

// Policy describes which character classes participate in generation and
// which characters to strip from the resulting alphabet.
type Policy struct {
	Length           int
	Upper            bool
	Lower            bool
	Digits           bool
	Symbols          bool
	ExcludeAmbiguous bool
	ExcludeChars     string
}

// DefaultPolicy mirrors the generator's default UI settings: 16 characters,
// all classes enabled, ambiguous characters kept.
func DefaultPolicy() Policy {
	return Policy{Length: 16, Upper: true, Lower: true, Digits: true, Symbols: true}
}

// Alphabet returns the effective character set for the policy after class
// union and exclusions. An empty result means the policy admits no valid
// password.
func (p Policy) Alphabet() string {
	var b strings.Builder
	if p.Upper {
		b.WriteString(upperChars)
	}
	if p.Lower {
		b.WriteString(lowerChars)
	}
	if p.Digits {
		b.WriteString(digitChars)
	}
	if p.Symbols {
		b.WriteString(SymbolChars)
	}
	chars := b.String()
	if p.ExcludeAmbiguous {
		chars = stripChars(chars, ambiguousChars)
	}
	if p.ExcludeChars != "" {
		chars = stripChars(chars, p.ExcludeChars)
	}
	return chars
}

func stripChars(s, remove string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(remove, r) {
			return -1
		}
		return r
	}, s)
}

// Generate draws Length characters independently and uniformly from the
// policy's alphabet. An empty alphabet yields an empty string; the caller
// treats that as "no valid policy" rather than an error. A failure of the
// system random source is an error and never degrades to weaker randomness.
func Generate(p Policy) (string, error) {
	alphabet := p.Alphabet()
	if alphabet == "" || p.Length <= 0 {
		return "", nil
	}
	out := make([]byte, p.Length)
	for i := range out {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", fmt.Errorf("secure random source unavailable: %w", err)
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out), nil
}

// GeneratePassphrase selects words independently and uniformly (with
// replacement) from the fixed word list, joined by separator.
func GeneratePassphrase(words int, separator string) (string, error) {
	if words <= 0 {
		return "", nil
	}
	picked := make([]string, words)
	for i := range picked {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(wordList))))
		if err != nil {
			return "", fmt.Errorf("secure random source unavailable: %w", err)
		}
		picked[i] = wordList[idx.Int64()]
	}
	return strings.Join(picked, separator), nil
}

// Words exposes a copy of the passphrase word list for tests and docs.
func Words() []string {
	out := make([]string, len(wordList))
	copy(out, wordList)
	return out
}
