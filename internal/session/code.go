package session

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// CodePolicy defines the format session codes must satisfy and how to
// mint new candidates in that format.
type CodePolicy interface {
	// Name returns the policy's configuration name.
	Name() string
	// Generate produces a random candidate code matching the policy.
	Generate() string
	// Validate reports whether code matches the policy.
	Validate(code string) bool
}

// PolicyByName resolves a configuration name to a code policy.
// Supported: "alphanum6" (6 uppercase alphanumerics), "digits4"
// (any 4 digits), "repeated-digit" (one digit repeated 4 times).
func PolicyByName(name string) (CodePolicy, error) {
	switch name {
	case "alphanum6":
		return alphanumPolicy{length: 6}, nil
	case "digits4":
		return digitsPolicy{length: 4}, nil
	case "repeated-digit":
		return repeatedDigitPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown code policy: %s", name)
	}
}

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type alphanumPolicy struct {
	length int
}

func (p alphanumPolicy) Name() string { return fmt.Sprintf("alphanum%d", p.length) }

func (p alphanumPolicy) Generate() string {
	var b strings.Builder
	b.Grow(p.length)
	for i := 0; i < p.length; i++ {
		b.WriteByte(codeAlphabet[rand.IntN(len(codeAlphabet))])
	}
	return b.String()
}

func (p alphanumPolicy) Validate(code string) bool {
	if len(code) != p.length {
		return false
	}
	for i := 0; i < len(code); i++ {
		if !strings.ContainsRune(codeAlphabet, rune(code[i])) {
			return false
		}
	}
	return true
}

type digitsPolicy struct {
	length int
}

func (p digitsPolicy) Name() string { return fmt.Sprintf("digits%d", p.length) }

func (p digitsPolicy) Generate() string {
	var b strings.Builder
	b.Grow(p.length)
	for i := 0; i < p.length; i++ {
		b.WriteByte(byte('0' + rand.IntN(10)))
	}
	return b.String()
}

func (p digitsPolicy) Validate(code string) bool {
	if len(code) != p.length {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}

// repeatedDigitPolicy accepts one digit repeated 4 times (e.g. "4444").
// The code space holds only 10 values, so collisions are expected and
// generation retries are bounded by the registry.
type repeatedDigitPolicy struct{}

func (repeatedDigitPolicy) Name() string { return "repeated-digit" }

func (repeatedDigitPolicy) Generate() string {
	return strings.Repeat(string(byte('0'+rand.IntN(10))), 4)
}

func (repeatedDigitPolicy) Validate(code string) bool {
	if len(code) != 4 {
		return false
	}
	if code[0] < '0' || code[0] > '9' {
		return false
	}
	for i := 1; i < 4; i++ {
		if code[i] != code[0] {
			return false
		}
	}
	return true
}
