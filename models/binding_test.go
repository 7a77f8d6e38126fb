package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRoleBinding_CopiesMappings(t *testing.T) {
	mappings := []RoleMapping{
		{Symbol: "😎", RoleName: "Casual"},
		{Symbol: "🔥", RoleName: "Competitive"},
	}

	binding := NewRoleBinding("msg-1", "chan-1", "player_types", mappings)
	mappings[0].RoleName = "Changed"

	assert.Equal(t, "Casual", binding.Roles[0].RoleName)
	assert.Equal(t, []string{"😎", "🔥"}, binding.Symbols())
}

func TestRoleBinding_RoleFor(t *testing.T) {
	binding := NewRoleBinding("msg-1", "chan-1", "primary_professions", []RoleMapping{
		{Symbol: "⚗️", RoleName: "Alchemy"},
		{Symbol: "💎", RoleName: "Jewelcrafting"},
	})

	t.Run("exact match", func(t *testing.T) {
		assert.Equal(t, "Alchemy", binding.RoleFor("⚗️").MustGet())
	})

	t.Run("variation selector stripped by gateway", func(t *testing.T) {
		assert.Equal(t, "Alchemy", binding.RoleFor("\u2697").MustGet())
	})

	t.Run("unknown symbol", func(t *testing.T) {
		assert.False(t, binding.RoleFor("🎣").IsPresent())
	})
}

func TestReactionOutcome(t *testing.T) {
	assert.True(t, ReactionOutcome{Status: ReactionStatusGranted}.Mutated())
	assert.True(t, ReactionOutcome{Status: ReactionStatusRevoked}.Mutated())
	assert.False(t, ReactionOutcome{Status: ReactionStatusFailed}.Mutated())

	assert.Equal(t, "unbound", ReactionOutcome{Status: ReactionStatusUnbound}.String())
	assert.Equal(t, "granted (Casual)", ReactionOutcome{Status: ReactionStatusGranted, RoleName: "Casual"}.String())
	assert.Equal(t,
		"failed (Casual): boom",
		ReactionOutcome{Status: ReactionStatusFailed, RoleName: "Casual", Err: errors.New("boom")}.String(),
	)
}
