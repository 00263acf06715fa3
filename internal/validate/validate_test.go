package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  error
	}{
		{name: "plain letters", username: "alice"},
		{name: "letters digits period underscore", username: "alice.b_2"},
		{name: "single letter", username: "a"},
		{name: "uppercase", username: "Alice"},
		{name: "interior period", username: "a.l.i.c.e"},
		{name: "empty string fails character class", username: "", wantErr: ErrUsernameForbiddenChars},
		{name: "space", username: "alice smith", wantErr: ErrUsernameForbiddenChars},
		{name: "hyphen", username: "alice-b", wantErr: ErrUsernameForbiddenChars},
		{name: "non-ascii", username: "ålice", wantErr: ErrUsernameForbiddenChars},
		{name: "emoji", username: "alice😀", wantErr: ErrUsernameForbiddenChars},
		{name: "leading period", username: ".alice", wantErr: ErrUsernameLeadingPeriod},
		{name: "leading digit", username: "1alice", wantErr: ErrUsernameLeadingDigit},
		{name: "leading underscore is fine", username: "_alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Username(tt.username)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

// The character-class rule is checked before the leading-period rule, which
// is checked before the leading-digit rule; only the first violation is
// reported.
func TestUsernameRuleOrdering(t *testing.T) {
	// Leading period AND forbidden chars: character class wins.
	assert.ErrorIs(t, Username(".ali ce"), ErrUsernameForbiddenChars)
	// Leading digit AND forbidden chars: character class wins.
	assert.ErrorIs(t, Username("1ali-ce"), ErrUsernameForbiddenChars)
	// A period followed by a digit: period rule fires, digit rule never runs.
	assert.ErrorIs(t, Username(".1alice"), ErrUsernameLeadingPeriod)
}

func TestEmail(t *testing.T) {
	valid := []string{
		"a@b.com",
		"alice.smith@example.org",
		"alice+tag@sub.example.co.uk",
	}
	for _, email := range valid {
		assert.NoError(t, Email(email), email)
	}

	invalid := []string{
		"",
		"alice",
		"alice@",
		"@example.com",
		"alice@@example.com",
		"alice smith@example.com",
	}
	for _, email := range invalid {
		assert.ErrorIs(t, Email(email), ErrInvalidEmail, email)
	}
}

func TestPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "all four classes present", password: "Sup3r!Secret"},
		{name: "minimum length", password: "Aa1!aaaa"},
		{name: "non-ascii", password: "Sup3r!Secrét", wantErr: ErrPasswordForbiddenChars},
		{name: "too short", password: "Aa1!aaa", wantErr: ErrInsecurePassword},
		{name: "missing digit", password: "Super!Secret", wantErr: ErrInsecurePassword},
		{name: "missing lowercase", password: "SUP3R!SECRET", wantErr: ErrInsecurePassword},
		{name: "missing uppercase", password: "sup3r!secret", wantErr: ErrInsecurePassword},
		{name: "missing symbol", password: "Sup3rSecret", wantErr: ErrInsecurePassword},
		{name: "symbol outside the fixed set", password: "Sup3rSecret~", wantErr: ErrInsecurePassword},
		{name: "underscore counts as symbol", password: "Sup3r_Secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Password(tt.password)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestPasswordLengthBounds(t *testing.T) {
	base := "Aa1!"

	// 72 characters is accepted, 73 is not.
	long := base + repeat('x', 68)
	require.Len(t, long, 72)
	assert.NoError(t, Password(long))

	tooLong := base + repeat('x', 69)
	require.Len(t, tooLong, 73)
	assert.ErrorIs(t, Password(tooLong), ErrInsecurePassword)
}

func repeat(c byte, n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = c
	}
	return string(buf)
}
