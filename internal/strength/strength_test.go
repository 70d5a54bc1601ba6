// Copyright (c) 2025 Khalid Sakr
// Elsakr Password Vault - local encrypted credential manager
// This source code is licensed under the MIT license found in the LICENSE file.
package strength

import (
	"testing"
)

func TestAnalyze_EmptyPassword(t *testing.T) {
	for _, advanced := range []bool{true, false} {
		res := New(advanced).Analyze("")
		if res.Score != 0 || res.Strength != "None" || res.CrackTime != "instant" {
			t.Fatalf("advanced=%v: unexpected empty result: %+v", advanced, res)
		}
		if len(res.Feedback) != 0 {
			t.Fatalf("advanced=%v: expected no feedback for empty password, got %v", advanced, res.Feedback)
		}
	}
}

func TestHeuristic_Buckets(t *testing.T) {
	cases := []struct {
		password string
		score    int
		label    string
	}{
		// 4 chars, lowercase only: 0.5 points, floors to 0.
		{"abcd", 0, "Very Weak"},
		// 8 lowercase: 1 + 0.5 = 1.5, floors to 1.
		{"abcdefgh", 1, "Weak"},
		// 8 chars, three classes: 1 + 1.5 = 2.5, floors to 2.
		{"Abcdefg1", 2, "Fair"},
		// 12 chars, three classes: 2 + 1.5 = 3.5, floors to 3.
		{"Abcdefghijk1", 3, "Good"},
		// 12 chars, all four classes: 2 + 2 = 4.
		{"Abcdefghij1!", 4, "Strong"},
	}
	est := New(false)
	for _, tc := range cases {
		res := est.Analyze(tc.password)
		if res.Score != tc.score {
			t.Fatalf("%q: expected score %d, got %d", tc.password, tc.score, res.Score)
		}
		if res.Strength != tc.label {
			t.Fatalf("%q: expected label %q, got %q", tc.password, tc.label, res.Strength)
		}
		if res.CrackTime != "Unknown" {
			t.Fatalf("%q: heuristic crack time should be Unknown, got %q", tc.password, res.CrackTime)
		}
	}
}

func TestHeuristic_Feedback(t *testing.T) {
	res := New(false).Analyze("abc")
	want := []string{
		"Use at least 8 characters",
		"Add uppercase letters",
		"Add numbers",
		"Add symbols",
	}
	if len(res.Feedback) != len(want) {
		t.Fatalf("expected %d suggestions, got %v", len(want), res.Feedback)
	}
	for i, w := range want {
		if res.Feedback[i] != w {
			t.Fatalf("suggestion %d: expected %q, got %q", i, w, res.Feedback[i])
		}
	}
}

func TestHeuristic_NoFeedbackWhenComplete(t *testing.T) {
	res := New(false).Analyze("Abcdefghij1!")
	if len(res.Feedback) != 0 {
		t.Fatalf("expected no suggestions, got %v", res.Feedback)
	}
}

func TestZxcvbn_OrdersSensibly(t *testing.T) {
	est := New(true)
	weak := est.Analyze("aaaaaaaa")
	strong := est.Analyze("vG7#kQp2$wXz9mRt")
	if weak.Score >= strong.Score {
		t.Fatalf("repeated-letter password (%d) scored >= random password (%d)", weak.Score, strong.Score)
	}
	if strong.CrackTime == "" {
		t.Fatalf("expected a crack time display string")
	}
	if weak.Score < 0 || weak.Score > 4 || strong.Score < 0 || strong.Score > 4 {
		t.Fatalf("scores out of range: %d, %d", weak.Score, strong.Score)
	}
}

func TestZxcvbn_SuggestionsFromClassRules(t *testing.T) {
	res := New(true).Analyze("alllowercase")
	found := false
	for _, s := range res.Feedback {
		if s == "Add uppercase letters" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected class suggestion, got %v", res.Feedback)
	}
}

func TestHeuristic_LengthCountsRunes(t *testing.T) {
	est := New(false)

	// 8 runes but 16 bytes: the length rule must count characters.
	long := est.Analyze("ñañañañá")
	for _, s := range long.Feedback {
		if s == "Use at least 8 characters" {
			t.Fatalf("8-rune password flagged as too short: %v", long.Feedback)
		}
	}
	if long.Score < 1 {
		t.Fatalf("8-rune password missed the length point: score %d", long.Score)
	}

	// 4 runes, 8 bytes: still too short.
	short := est.Analyze("ññéé")
	found := false
	for _, s := range short.Feedback {
		if s == "Use at least 8 characters" {
			found = true
		}
	}
	if !found {
		t.Fatalf("4-rune password not flagged as too short: %v", short.Feedback)
	}
}
