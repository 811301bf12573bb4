package recruit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseServer(t *testing.T) {
	s, err := ParseServer("Tokyo")
	assert.NoError(t, err)
	assert.Equal(t, ServerTokyo, s)

	_, err = ParseServer("Osaka")
	assert.Error(t, err)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Competitive")
	assert.NoError(t, err)
	assert.Equal(t, ModeCompetitive, m)

	_, err = ParseMode("Ranked")
	assert.Error(t, err)
}

func TestParseRank(t *testing.T) {
	r, err := ParseRank("Gold")
	assert.NoError(t, err)
	assert.Equal(t, RankGold, r)

	// The sentinel is not a selectable rank.
	_, err = ParseRank("None")
	assert.Error(t, err)
}

func TestCapacitySizes(t *testing.T) {
	assert.Equal(t, 2, CapacityDuo.Size())
	assert.Equal(t, 3, CapacityTrio.Size())
	assert.Equal(t, 4, CapacityQuad.Size())
	assert.Equal(t, 5, CapacityFullParty.Size())
	assert.Equal(t, 10, CapacityTen.Size())
	assert.Equal(t, 0, Capacity("Eleven").Size())
}

func TestCapacityOptionsPerMode(t *testing.T) {
	assert.Equal(t, []Capacity{CapacityDuo, CapacityTrio, CapacityQuad, CapacityFullParty},
		CapacityOptions(ModeUnrated))

	// Competitive never offers Quad.
	competitive := CapacityOptions(ModeCompetitive)
	assert.Equal(t, []Capacity{CapacityDuo, CapacityTrio, CapacityFullParty}, competitive)
	assert.NotContains(t, competitive, CapacityQuad)

	custom := CapacityOptions(ModeCustom)
	assert.Len(t, custom, 9)
	assert.Contains(t, custom, CapacityQuad)
	assert.Contains(t, custom, CapacityTen)
}

func TestCapacityAllowed(t *testing.T) {
	assert.True(t, CapacityAllowed(ModeCompetitive, CapacityTrio))
	assert.False(t, CapacityAllowed(ModeCompetitive, CapacityQuad))
	assert.False(t, CapacityAllowed(ModeUnrated, CapacitySix))
	assert.True(t, CapacityAllowed(ModeCustom, CapacitySix))
}
