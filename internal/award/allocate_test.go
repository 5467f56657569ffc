package award_test

import (
	"testing"

	"awards/internal/award"

	"github.com/stretchr/testify/require"
)

func TestProposeSplitFlatDivision(t *testing.T) {
	split := award.ProposeSplit(300, []int{10, 20, 30})

	require.Len(t, split, 3)
	require.Equal(t, 100.0, split[10])
	require.Equal(t, 100.0, split[20])
	require.Equal(t, 100.0, split[30])
}

func TestProposeSplitNothingToAllocate(t *testing.T) {
	require.Empty(t, award.ProposeSplit(0, []int{1, 2}))
	require.Empty(t, award.ProposeSplit(-10, []int{1, 2}))
	require.Empty(t, award.ProposeSplit(300, nil))
}

func TestCheckBalance(t *testing.T) {
	diff, balanced := award.CheckBalance(300, map[int]float64{1: 100, 2: 100, 3: 100})
	require.True(t, balanced)
	require.InDelta(t, 0.0, diff, 0.01)

	diff, balanced = award.CheckBalance(300, map[int]float64{1: 100, 2: 100})
	require.False(t, balanced)
	require.Equal(t, -100.0, diff)

	// Копеечное расхождение от деления не считается дисбалансом
	split := award.ProposeSplit(100, []int{1, 2, 3})
	_, balanced = award.CheckBalance(100, split)
	require.True(t, balanced)
}
