package service

import (
	"adclub/internal/domain"
)

// BonusThresholds returns the candidate thresholds for a club's bonus
// series: repeated multiplication by domain.SeriesGrowth starting from
// the club's serial number. The anchor (the serial itself) is already
// dropped; thresholds[0] is the first realizable step.
func BonusThresholds(serial uint64) []uint64 {
	out := make([]uint64, 0, domain.MaxBonusSteps)
	v := serial
	for i := 0; i < domain.MaxBonusSteps; i++ {
		v *= domain.SeriesGrowth
		out = append(out, v)
	}
	return out
}

// BonusAmount is the payout for 0-based step i: BonusMultiplier * 2^i.
func BonusAmount(step int) float64 {
	return domain.BonusMultiplier * float64(uint64(1)<<uint(step))
}

// QualifyingSteps returns which steps of a club's series are payable
// given the current global club population and how many steps were
// already realized. Thresholds are monotonic, so the scan stops at the
// first one above the population.
func QualifyingSteps(serial uint64, totalClubs int64, alreadyRealized int) []int {
	var steps []int
	for i, th := range BonusThresholds(serial) {
		if th > uint64(totalClubs) {
			break
		}
		if i < alreadyRealized {
			continue
		}
		steps = append(steps, i)
	}
	return steps
}
