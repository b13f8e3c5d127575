package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velopago/riskengine/internal/domain/valueobject"
)

func TestDecisionFromString(t *testing.T) {
	tests := []struct {
		input   string
		want    valueobject.Decision
		wantErr bool
	}{
		{input: "ACCEPTED", want: valueobject.DecisionAccepted},
		{input: "IN_REVIEW", want: valueobject.DecisionInReview},
		{input: "REJECTED", want: valueobject.DecisionRejected},
		{input: "accepted", wantErr: true},
		{input: "", wantErr: true},
		{input: "DECLINED", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := valueobject.DecisionFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want))
		})
	}
}

// The reject boundary is deliberately inclusive: a score exactly equal to
// rejectAt maps to REJECTED, not IN_REVIEW. This resolves a historical
// disagreement between two engine variants in favor of the inclusive form.
func TestDecisionFromScore_InclusiveBoundaries(t *testing.T) {
	const reviewAt, rejectAt = 4, 10

	tests := []struct {
		name  string
		score int
		want  valueobject.Decision
	}{
		{name: "below review threshold", score: 3, want: valueobject.DecisionAccepted},
		{name: "exactly review threshold", score: 4, want: valueobject.DecisionInReview},
		{name: "just below reject threshold", score: 9, want: valueobject.DecisionInReview},
		{name: "exactly reject threshold", score: 10, want: valueobject.DecisionRejected},
		{name: "above reject threshold", score: 100, want: valueobject.DecisionRejected},
		{name: "negative score", score: -2, want: valueobject.DecisionAccepted},
		{name: "zero score", score: 0, want: valueobject.DecisionAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := valueobject.DecisionFromScore(tt.score, reviewAt, rejectAt)
			assert.Equal(t, tt.want.String(), got.String())
		})
	}
}

func TestDecisionPredicates(t *testing.T) {
	assert.True(t, valueobject.DecisionAccepted.IsAccepted())
	assert.True(t, valueobject.DecisionInReview.IsInReview())
	assert.True(t, valueobject.DecisionRejected.IsRejected())
	assert.False(t, valueobject.DecisionAccepted.IsRejected())

	var zero valueobject.Decision
	assert.True(t, zero.IsZero())
	assert.False(t, valueobject.DecisionAccepted.IsZero())
}
