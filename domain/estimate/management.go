package estimate

// ManagementCalculator derives oversight headcount and hours.
type ManagementCalculator struct {
	policy ManagementPolicy
}

func NewManagementCalculator(policy ManagementPolicy) *ManagementCalculator {
	return &ManagementCalculator{policy: policy}
}

// Compute returns management hours and headcount for documentCount
// documents over durationMonths. Headcount is ceil(documents/per-resource),
// so zero documents need no resource.
func (m *ManagementCalculator) Compute(documentCount, durationMonths int) (hours float64, headcount int) {
	if documentCount <= 0 || m.policy.DocumentsPerResource <= 0 {
		return 0, 0
	}
	per := m.policy.DocumentsPerResource
	// Ceiling without forming documentCount+per, which overflows near MaxInt.
	headcount = documentCount / per
	if documentCount%per != 0 {
		headcount++
	}
	hours = float64(headcount) * float64(durationMonths) * m.policy.HoursPerResourceMonth
	return hours, headcount
}
