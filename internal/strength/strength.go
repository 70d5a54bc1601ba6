// Copyright (c) 2025 Khalid Sakr
// Elsakr Password Vault - local encrypted credential manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package strength scores candidate passwords. Two backends implement the
// Estimator capability: the zxcvbn entropy/pattern estimator and a
// rule-based heuristic. The backend is chosen once at process start and
// passed to consumers; availability is a typed configuration state, not a
// global flag.
package strength

import (
	"strings"
	"unicode"
	"unicode/utf8"

	zxcvbn "github.com/ccojocar/zxcvbn-go"
)

// symbolChars must match the generator's symbol class.
const symbolChars = "!@#$%^&*()_+-=[]{}|;:,.<>?"

// Result is the outcome of analyzing one password.
type Result struct {
	// Score is the normalized strength class, 0 (worst) to 4 (best).
	Score int
	// Strength is the human label for Score.
	Strength string
	// Feedback lists suggestions, in a stable order.
	Feedback []string
	// CrackTime is a display string for the estimated offline crack time.
	CrackTime string
}

// Estimator scores passwords. Implementations are pure: the same password
// always yields the same result for a given backend.
type Estimator interface {
	Analyze(password string) Result
}

var strengthLabels = [5]string{"Very Weak", "Weak", "Fair", "Good", "Strong"}

// New selects the estimator backend. With advanced=true the zxcvbn
// entropy/pattern estimator is used for score and crack time; otherwise the
// documented rule-based heuristic applies. Suggestions come from the class
// rules on both paths: the zxcvbn Go port carries no feedback module.
func New(advanced bool) Estimator {
	if advanced {
		return zxcvbnEstimator{}
	}
	return heuristicEstimator{}
}

type zxcvbnEstimator struct{}

func (zxcvbnEstimator) Analyze(password string) Result {
	if password == "" {
		return emptyResult()
	}
	match := zxcvbn.PasswordStrength(password, nil)
	score := match.Score
	if score < 0 {
		score = 0
	}
	if score > 4 {
		score = 4
	}
	return Result{
		Score:     score,
		Strength:  strengthLabels[score],
		Feedback:  classSuggestions(password),
		CrackTime: match.CrackTimeDisplay,
	}
}

type heuristicEstimator struct{}

// Analyze applies the fixed rule set: length thresholds are worth a full
// point each, each present character class half a point, summed and
// floored. The buckets are coarse on purpose; they are the documented
// contract, not a tunable.
func (heuristicEstimator) Analyze(password string) Result {
	if password == "" {
		return emptyResult()
	}

	var score float64
	var feedback []string

	runes := utf8.RuneCountInString(password)
	if runes >= 8 {
		score++
	} else {
		feedback = append(feedback, "Use at least 8 characters")
	}
	if runes >= 12 {
		score++
	}
	if containsFunc(password, unicode.IsUpper) {
		score += 0.5
	} else {
		feedback = append(feedback, "Add uppercase letters")
	}
	if containsFunc(password, unicode.IsLower) {
		score += 0.5
	} else {
		feedback = append(feedback, "Add lowercase letters")
	}
	if containsFunc(password, unicode.IsDigit) {
		score += 0.5
	} else {
		feedback = append(feedback, "Add numbers")
	}
	if strings.ContainsAny(password, symbolChars) {
		score += 0.5
	} else {
		feedback = append(feedback, "Add symbols")
	}

	final := int(score)
	if final > 4 {
		final = 4
	}
	return Result{
		Score:     final,
		Strength:  strengthLabels[final],
		Feedback:  feedback,
		CrackTime: "Unknown",
	}
}

func emptyResult() Result {
	return Result{Score: 0, Strength: "None", Feedback: nil, CrackTime: "instant"}
}

// classSuggestions reuses the heuristic's class rules as suggestion text.
func classSuggestions(password string) []string {
	var feedback []string
	if utf8.RuneCountInString(password) < 8 {
		feedback = append(feedback, "Use at least 8 characters")
	}
	if !containsFunc(password, unicode.IsUpper) {
		feedback = append(feedback, "Add uppercase letters")
	}
	if !containsFunc(password, unicode.IsLower) {
		feedback = append(feedback, "Add lowercase letters")
	}
	if !containsFunc(password, unicode.IsDigit) {
		feedback = append(feedback, "Add numbers")
	}
	if !strings.ContainsAny(password, symbolChars) {
		feedback = append(feedback, "Add symbols")
	}
	return feedback
}

func containsFunc(s string, fn func(rune) bool) bool {
	for _, r := range s {
		if fn(r) {
			return true
		}
	}
	return false
}
