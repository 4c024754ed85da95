package hcc

// Impact converts a coding transition into an annualized reimbursement
// delta. The conversion factor is dollars per unit of relative weight.
// CURRENT candidates carry no actionable value and always yield zero.
func Impact(c CodeCandidate, conversionFactor float64) float64 {
	switch c.Role {
	case RoleUpgrade:
		if c.Current == nil {
			return c.Code.RelativeWeight * conversionFactor
		}
		return (c.Code.RelativeWeight - c.Current.RelativeWeight) * conversionFactor
	case RoleMissed:
		return c.Code.RelativeWeight * conversionFactor
	default:
		return 0
	}
}
