package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAchievementCatalog_UniqueIDs(t *testing.T) {
	seen := make(map[string]struct{})
	for _, a := range AchievementCatalog() {
		_, dup := seen[a.ID]
		require.False(t, dup, "duplicate achievement id %q", a.ID)
		seen[a.ID] = struct{}{}
	}
}

func TestAchievementCatalog_ValidEntries(t *testing.T) {
	for _, a := range AchievementCatalog() {
		assert.NotEmpty(t, a.ID)
		assert.NotEmpty(t, a.Title)
		assert.Greater(t, a.Threshold, 0)
		assert.Contains(t, []AchievementType{AchievementCount, AchievementStreak}, a.Type)
	}
}

// The catalog is shared state; callers must get a copy they can reorder.
func TestAchievementCatalog_ReturnsCopy(t *testing.T) {
	first := AchievementCatalog()
	first[0].ID = "mutated"

	assert.Equal(t, "begin", AchievementCatalog()[0].ID)
}

func TestAchievementCatalog_ThresholdsAscendPerType(t *testing.T) {
	last := map[AchievementType]int{}
	for _, a := range AchievementCatalog() {
		assert.Greater(t, a.Threshold, last[a.Type], "catalog order defines unlock order within type")
		last[a.Type] = a.Threshold
	}
}
