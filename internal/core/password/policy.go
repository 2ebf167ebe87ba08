// Package password enforces the account password policy and scores password
// strength. All functions are pure so registration and any future
// password-change flow share identical behaviour.
package password

import "strings"

const (
	// MinLength is the minimum accepted password length.
	MinLength = 8
	// SpecialChars is the fixed set of accepted special characters.
	SpecialChars = "!@#$%^&*()_+={}[]|:;<>,.?/~`-"
)

// Result is the outcome of validating a candidate password.
type Result struct {
	Valid   bool   `json:"is_valid"`
	Message string `json:"message"`
}

// Label describes a strength score for display.
type Label struct {
	Text  string `json:"label"`
	Color string `json:"color"`
}

// Validate checks a candidate password against the policy. Rules are applied
// in a fixed order (length, uppercase, lowercase, digit, special) and the
// first violation determines the message.
func Validate(candidate string) Result {
	if candidate == "" {
		return Result{Message: "Password is required"}
	}
	if len(candidate) < MinLength {
		return Result{Message: "Password must be at least 8 characters long"}
	}
	if !hasUpper(candidate) {
		return Result{Message: "Password must contain at least one uppercase letter"}
	}
	if !hasLower(candidate) {
		return Result{Message: "Password must contain at least one lowercase letter"}
	}
	if !hasDigit(candidate) {
		return Result{Message: "Password must contain at least one number"}
	}
	if !hasSpecial(candidate) {
		return Result{Message: "Password must contain at least one special character"}
	}
	return Result{Valid: true, Message: "Password meets all requirements"}
}

// Strength scores a candidate password from 0 (weakest) to 100 (strongest).
// Length contributes up to 40 points (4 per character), each present
// character class adds its weight, and every distinct class present adds 5.
func Strength(candidate string) int {
	if candidate == "" {
		return 0
	}

	score := len(candidate) * 4
	if score > 40 {
		score = 40
	}

	classes := 0
	if hasUpper(candidate) {
		score += 10
		classes++
	}
	if hasLower(candidate) {
		score += 10
		classes++
	}
	if hasDigit(candidate) {
		score += 10
		classes++
	}
	if hasSpecial(candidate) {
		score += 15
		classes++
	}
	score += classes * 5

	if score > 100 {
		score = 100
	}
	return score
}

// StrengthLabel maps a score to its display band.
func StrengthLabel(score int) Label {
	switch {
	case score < 30:
		return Label{Text: "Very Weak", Color: "#ff4d4d"}
	case score < 50:
		return Label{Text: "Weak", Color: "#ffa64d"}
	case score < 70:
		return Label{Text: "Moderate", Color: "#ffff4d"}
	case score < 90:
		return Label{Text: "Strong", Color: "#4dff4d"}
	default:
		return Label{Text: "Very Strong", Color: "#4d4dff"}
	}
}

func hasUpper(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool { return r >= 'A' && r <= 'Z' })
}

func hasLower(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool { return r >= 'a' && r <= 'z' })
}

func hasDigit(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool { return r >= '0' && r <= '9' })
}

func hasSpecial(s string) bool {
	return strings.ContainsAny(s, SpecialChars)
}
