package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyByName(t *testing.T) {
	tests := []struct {
		name        string
		policyName  string
		shouldError bool
	}{
		{name: "alphanum6", policyName: "alphanum6"},
		{name: "digits4", policyName: "digits4"},
		{name: "repeated digit", policyName: "repeated-digit"},
		{name: "unknown", policyName: "hex8", shouldError: true},
		{name: "empty", policyName: "", shouldError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy, err := PolicyByName(tt.policyName)

			if tt.shouldError {
				assert.Error(t, err)
				assert.Nil(t, policy)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, policy)
				assert.Equal(t, tt.policyName, policy.Name())
			}
		})
	}
}

func TestPolicyValidate(t *testing.T) {
	tests := []struct {
		name   string
		policy string
		code   string
		valid  bool
	}{
		{name: "alphanum6 uppercase", policy: "alphanum6", code: "A1B2C3", valid: true},
		{name: "alphanum6 digits only", policy: "alphanum6", code: "123456", valid: true},
		{name: "alphanum6 too short", policy: "alphanum6", code: "A1B2C", valid: false},
		{name: "alphanum6 lowercase rejected", policy: "alphanum6", code: "a1b2c3", valid: false},
		{name: "alphanum6 punctuation rejected", policy: "alphanum6", code: "A1B2C!", valid: false},

		{name: "digits4 ok", policy: "digits4", code: "1234", valid: true},
		{name: "digits4 repeated ok", policy: "digits4", code: "4444", valid: true},
		{name: "digits4 too long", policy: "digits4", code: "12345", valid: false},
		{name: "digits4 letters rejected", policy: "digits4", code: "12a4", valid: false},

		{name: "repeated digit ok", policy: "repeated-digit", code: "4444", valid: true},
		{name: "repeated zero ok", policy: "repeated-digit", code: "0000", valid: true},
		{name: "repeated digit mixed rejected", policy: "repeated-digit", code: "4445", valid: false},
		{name: "repeated digit too short", policy: "repeated-digit", code: "444", valid: false},
		{name: "repeated digit too long", policy: "repeated-digit", code: "44444", valid: false},
		{name: "repeated letter rejected", policy: "repeated-digit", code: "aaaa", valid: false},
		{name: "repeated digit empty", policy: "repeated-digit", code: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy, err := PolicyByName(tt.policy)
			require.NoError(t, err)

			assert.Equal(t, tt.valid, policy.Validate(tt.code))
		})
	}
}

func TestPolicyGenerateMatchesOwnFormat(t *testing.T) {
	for _, name := range []string{"alphanum6", "digits4", "repeated-digit"} {
		t.Run(name, func(t *testing.T) {
			policy, err := PolicyByName(name)
			require.NoError(t, err)

			for i := 0; i < 100; i++ {
				code := policy.Generate()
				assert.True(t, policy.Validate(code), "generated code %q should satisfy %s", code, name)
			}
		})
	}
}
