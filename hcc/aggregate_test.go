package hcc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoredFixture(code string, role Role, score int, impact float64) ScoredCandidate {
	return ScoredCandidate{
		CodeCandidate: CodeCandidate{
			Code:      DiagnosisCode{Code: code, Description: code, RelativeWeight: impact / 17000, CategoryEligible: true},
			Condition: ExtractedCondition{Label: "x", Evidence: "evidence for " + code},
			Role:      role,
		},
		Score:  score,
		Impact: impact,
	}
}

func TestAggregate_OrderingIsDeterministic(t *testing.T) {
	scored := []ScoredCandidate{
		scoredFixture("B00.1", RoleMissed, 70, 1000),
		scoredFixture("A00.1", RoleMissed, 70, 1000),
		scoredFixture("C00.1", RoleMissed, 90, 500),
		scoredFixture("D00.1", RoleUpgrade, 50, 4000),
	}

	recs := Aggregate(scored, 40, "pattern-matched")
	require.Len(t, recs, 4)
	// Impact desc, then score desc, then code asc.
	assert.Equal(t, "D00.1", recs[0].Code)
	assert.Equal(t, "A00.1", recs[1].Code)
	assert.Equal(t, "B00.1", recs[2].Code)
	assert.Equal(t, "C00.1", recs[3].Code)
}

func TestAggregate_FiltersBelowThresholdAndCurrent(t *testing.T) {
	scored := []ScoredCandidate{
		scoredFixture("A00.1", RoleMissed, 39, 1000),
		scoredFixture("B00.1", RoleCurrent, 99, 0),
		scoredFixture("C00.1", RoleMissed, 40, 1000),
	}

	recs := Aggregate(scored, 40, "pattern-matched")
	require.Len(t, recs, 1)
	assert.Equal(t, "C00.1", recs[0].Code)
	for _, rec := range recs {
		assert.GreaterOrEqual(t, rec.Score, 40)
	}
}

func TestAggregate_DedupesByCodeAndMergesRationale(t *testing.T) {
	weaker := scoredFixture("A00.1", RoleMissed, 60, 1000)
	weaker.Condition.Evidence = "weaker mention"
	stronger := scoredFixture("A00.1", RoleMissed, 85, 1000)
	stronger.Condition.Evidence = "stronger mention"

	recs := Aggregate([]ScoredCandidate{weaker, stronger}, 40, "pattern-matched")
	require.Len(t, recs, 1)
	assert.Equal(t, 85, recs[0].Score)
	assert.Contains(t, recs[0].Rationale, `documented as "weaker mention"`)
	assert.Contains(t, recs[0].Rationale, `documented as "stronger mention"`)
}

func TestAggregate_RationaleCarriesProvenance(t *testing.T) {
	recs := Aggregate([]ScoredCandidate{scoredFixture("A00.1", RoleMissed, 60, 1000)}, 40, "pattern-matched")
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0].Rationale, "extraction: pattern-matched")
}

func TestAggregate_Empty(t *testing.T) {
	assert.Empty(t, Aggregate(nil, 40, "pattern-matched"))
}
