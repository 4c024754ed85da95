package hcc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	cat, err := NewCatalog(DefaultCatalogEntries())
	require.NoError(t, err)
	return cat
}

func findCandidate(cands []CodeCandidate, code string, role Role) *CodeCandidate {
	for i := range cands {
		if cands[i].Code.Code == code && cands[i].Role == role {
			return &cands[i]
		}
	}
	return nil
}

func TestMapper_UpgradeOverCurrentCode(t *testing.T) {
	m := NewMapper(testCatalog(t), nil)
	conditions := []ExtractedCondition{{Label: "diabetes", Confidence: 0.95, Qualifiers: []string{"nephropathy"}}}

	cands := m.Map(conditions, PatientContext{KnownCodes: []string{"E11.9"}})

	upgrade := findCandidate(cands, "E11.22", RoleUpgrade)
	require.NotNil(t, upgrade, "expected upgrade to the most specific eligible code")
	require.NotNil(t, upgrade.Current)
	assert.Equal(t, "E11.9", upgrade.Current.Code)

	current := findCandidate(cands, "E11.9", RoleCurrent)
	require.NotNil(t, current)
}

func TestMapper_MissedWhenNothingCoded(t *testing.T) {
	m := NewMapper(testCatalog(t), nil)
	conditions := []ExtractedCondition{{Label: "kidney transplant", Confidence: 0.9}}

	cands := m.Map(conditions, PatientContext{})

	require.Len(t, cands, 1)
	assert.Equal(t, "Z94.0", cands[0].Code.Code)
	assert.Equal(t, RoleMissed, cands[0].Role)
	assert.Nil(t, cands[0].Current)
}

func TestMapper_NoUpgradeWhenAlreadyMostSpecific(t *testing.T) {
	m := NewMapper(testCatalog(t), nil)
	conditions := []ExtractedCondition{{Label: "diabetes", Confidence: 0.95}}

	cands := m.Map(conditions, PatientContext{KnownCodes: []string{"E11.22"}})

	assert.Nil(t, findCandidate(cands, "E11.22", RoleUpgrade))
	assert.Nil(t, findCandidate(cands, "E11.22", RoleMissed))
	assert.NotNil(t, findCandidate(cands, "E11.22", RoleCurrent))
}

func TestMapper_IneligibleCodesNeverLeaveTheBoundary(t *testing.T) {
	m := NewMapper(testCatalog(t), nil)
	conditions := []ExtractedCondition{{Label: "depression", Confidence: 0.95}}

	cands := m.Map(conditions, PatientContext{KnownCodes: []string{"F32.0"}})

	for _, c := range cands {
		assert.True(t, c.Code.CategoryEligible, "candidate %s is not category eligible", c.Code.Code)
	}
	// F32.0 is the coded state, so F32.1 is an upgrade even though F32.0
	// itself is not eligible.
	upgrade := findCandidate(cands, "F32.1", RoleUpgrade)
	require.NotNil(t, upgrade)
	require.NotNil(t, upgrade.Current)
	assert.Equal(t, "F32.0", upgrade.Current.Code)
}

func TestMapper_DropsConditionsWithoutEligibleCodes(t *testing.T) {
	cat, err := NewCatalog([]DiagnosisCode{
		{Code: "X00.0", Description: "ineligible", ConditionLabel: "diabetes",
			CategoryEligible: false, RelativeWeight: 0.1, SpecificityRank: 1},
	})
	require.NoError(t, err)
	m := NewMapper(cat, nil)

	cands := m.Map([]ExtractedCondition{{Label: "diabetes", Confidence: 0.9}}, PatientContext{})
	assert.Empty(t, cands)
}

func TestMapper_UnknownKnownCodeIgnored(t *testing.T) {
	m := NewMapper(testCatalog(t), nil)
	cands := m.Map(nil, PatientContext{KnownCodes: []string{"Q99.999"}})
	assert.Empty(t, cands)
}
