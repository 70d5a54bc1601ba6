// Copyright (c) 2025 Khalid Sakr
// Elsakr Password Vault - local encrypted credential manager
// This source code is licensed under the MIT license found in the LICENSE file.
package generator

import (
	"strings"
	"testing"
)

func TestGenerate_LengthAndAlphabet(t *testing.T) {
	p := DefaultPolicy()
	p.Length = 24
	out, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(out) != 24 {
		t.Fatalf("expected length 24, got %d", len(out))
	}
	alphabet := p.Alphabet()
	for _, r := range out {
		if !strings.ContainsRune(alphabet, r) {
			t.Fatalf("character %q not in allowed alphabet", r)
		}
	}
}

func TestGenerate_ClassExclusions(t *testing.T) {
	p := Policy{Length: 64, Lower: true}
	out, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if strings.ContainsAny(out, upperChars) || strings.ContainsAny(out, digitChars) || strings.ContainsAny(out, SymbolChars) {
		t.Fatalf("output contains excluded classes: %q", out)
	}
}

func TestGenerate_ExcludeAmbiguous(t *testing.T) {
	p := DefaultPolicy()
	p.Length = 256
	p.ExcludeAmbiguous = true
	out, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if strings.ContainsAny(out, ambiguousChars) {
		t.Fatalf("output contains ambiguous characters: %q", out)
	}
}

func TestGenerate_ExcludeChars(t *testing.T) {
	p := Policy{Length: 256, Lower: true, ExcludeChars: "abcde"}
	out, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if strings.ContainsAny(out, "abcde") {
		t.Fatalf("output contains excluded characters: %q", out)
	}
}

func TestGenerate_EmptyAlphabet(t *testing.T) {
	out, err := Generate(Policy{Length: 16})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if out != "" {
		t.Fatalf("expected empty output for empty alphabet, got %q", out)
	}
}

func TestGenerate_SuccessiveOutputsDiffer(t *testing.T) {
	p := DefaultPolicy()
	a, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	b, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if a == b {
		t.Fatalf("two generated passwords were identical: %q", a)
	}
}

func TestGeneratePassphrase(t *testing.T) {
	phrase, err := GeneratePassphrase(4, "-")
	if err != nil {
		t.Fatalf("GeneratePassphrase failed: %v", err)
	}
	parts := strings.Split(phrase, "-")
	if len(parts) != 4 {
		t.Fatalf("expected 4 words, got %d: %q", len(parts), phrase)
	}
	words := Words()
	for _, p := range parts {
		found := false
		for _, w := range words {
			if p == w {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("word %q not in word list", p)
		}
	}
}

func TestGeneratePassphrase_ZeroWords(t *testing.T) {
	phrase, err := GeneratePassphrase(0, "-")
	if err != nil {
		t.Fatalf("GeneratePassphrase failed: %v", err)
	}
	if phrase != "" {
		t.Fatalf("expected empty passphrase, got %q", phrase)
	}
}
