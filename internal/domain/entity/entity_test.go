package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
		ok   bool
	}{
		{in: "ADMIN", want: RoleAdmin, ok: true},
		{in: "owner", want: RoleOwner, ok: true},
		{in: " user ", want: RoleUser, ok: true},
		{in: "merchant", want: Role("MERCHANT"), ok: false},
		{in: "", want: Role(""), ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseRole(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestRolesContains(t *testing.T) {
	roles := Roles{RoleAdmin, RoleOwner}

	assert.True(t, roles.Contains(RoleOwner))
	assert.False(t, roles.Contains(RoleUser))
	assert.Equal(t, []string{"ADMIN", "OWNER"}, roles.ToStrings())
}

func TestRoundAverage(t *testing.T) {
	assert.InDelta(t, 4.0, RoundAverage(4.0), 1e-9)
	assert.InDelta(t, 3.7, RoundAverage(11.0/3.0), 1e-9)
	assert.InDelta(t, 4.3, RoundAverage(4.25), 1e-9)
	assert.InDelta(t, 1.3, RoundAverage(4.0/3.0), 1e-9)
}

func TestScoreInRange(t *testing.T) {
	assert.False(t, ScoreInRange(0))
	assert.True(t, ScoreInRange(1))
	assert.True(t, ScoreInRange(5))
	assert.False(t, ScoreInRange(6))
}

func TestNormalizeEmailAndSummary(t *testing.T) {
	assert.Equal(t, "jane@example.com", NormalizeEmail("  Jane@Example.COM "))

	account := &Account{Name: "n", Email: "e", PasswordHash: "secret", Role: RoleUser}
	summary := account.Summary()
	assert.Equal(t, RoleUser, summary.Role)
	assert.Equal(t, "e", summary.Email)
}
