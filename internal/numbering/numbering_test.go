package numbering

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextTaskNumber_EmptySet(t *testing.T) {
	assert.Equal(t, "ST-001", NextTaskNumber(nil))
	assert.Equal(t, "ST-001", NextTaskNumber([]string{}))
}

func TestNextTaskNumber_MaxBasedNotGapFilling(t *testing.T) {
	assert.Equal(t, "ST-004", NextTaskNumber([]string{"ST-001", "ST-003"}))
}

func TestNextTaskNumber_LegacyPrefix(t *testing.T) {
	assert.Equal(t, "ST-013", NextTaskNumber([]string{"TF-012", "ST-005"}))
}

func TestNextTaskNumber_IgnoresMalformed(t *testing.T) {
	existing := []string{"ST-002", "BUG-99", "ST-", "st-7", "ST-01x"}
	assert.Equal(t, "ST-003", NextTaskNumber(existing))
}

func TestNextTaskNumber_PadsToThreeDigits(t *testing.T) {
	assert.Equal(t, "ST-100", NextTaskNumber([]string{"ST-099"}))
	assert.Equal(t, "ST-1000", NextTaskNumber([]string{"ST-999"}))
}

func TestNextTaskNumber_StrictlyIncreasingUnderDeletions(t *testing.T) {
	// Grow the stored set, interleaving deletions; issued numbers must never
	// repeat because the caller always supplies what is currently stored and
	// the allocator is max-based.
	stored := []string{}
	seen := map[string]bool{}

	for i := 0; i < 50; i++ {
		no := NextTaskNumber(stored)
		require.False(t, seen[no], "number %s issued twice", no)
		seen[no] = true
		stored = append(stored, no)

		// Delete an older number every few rounds.
		if i%3 == 0 && len(stored) > 1 {
			stored = stored[1:]
		}
	}
}

func TestNewID_Unique(t *testing.T) {
	ids := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := NewID()
		require.False(t, ids[id], fmt.Sprintf("duplicate id %s", id))
		ids[id] = true
	}
}
