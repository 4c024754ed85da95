package hcc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImpact(t *testing.T) {
	e119 := DiagnosisCode{Code: "E11.9", RelativeWeight: 0.104}
	e1122 := DiagnosisCode{Code: "E11.22", RelativeWeight: 0.302}
	z940 := DiagnosisCode{Code: "Z94.0", RelativeWeight: 0.525}

	upgrade := CodeCandidate{Code: e1122, Role: RoleUpgrade, Current: &e119}
	assert.InDelta(t, 3366, Impact(upgrade, 17000), 1e-6)

	missed := CodeCandidate{Code: z940, Role: RoleMissed}
	assert.InDelta(t, 8925, Impact(missed, 17000), 1e-6)

	current := CodeCandidate{Code: e119, Role: RoleCurrent}
	assert.Zero(t, Impact(current, 17000))
}

func TestImpact_MonotonicInConversionFactor(t *testing.T) {
	e119 := DiagnosisCode{Code: "E11.9", RelativeWeight: 0.104}
	e1122 := DiagnosisCode{Code: "E11.22", RelativeWeight: 0.302}
	candidates := []CodeCandidate{
		{Code: e1122, Role: RoleUpgrade, Current: &e119},
		{Code: e1122, Role: RoleMissed},
	}
	for _, c := range candidates {
		low := Impact(c, 17000)
		high := Impact(c, 25000)
		assert.Greater(t, high, low)
	}
}
