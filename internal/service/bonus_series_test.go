package service

import (
	"testing"

	"adclub/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestBonusThresholds(t *testing.T) {
	th := BonusThresholds(1)
	assert.Len(t, th, domain.MaxBonusSteps)
	assert.Equal(t, uint64(3), th[0]) // anchor dropped, first step is serial*3
	assert.Equal(t, uint64(9), th[1])
	assert.Equal(t, uint64(27), th[2])

	th = BonusThresholds(10)
	assert.Equal(t, uint64(30), th[0])
	assert.Equal(t, uint64(90), th[1])
}

func TestBonusAmountDoubles(t *testing.T) {
	assert.Equal(t, 200.0, BonusAmount(0))
	assert.Equal(t, 400.0, BonusAmount(1))
	assert.Equal(t, 800.0, BonusAmount(2))
	assert.Equal(t, 200.0*4096, BonusAmount(12))
}

func TestQualifyingSteps(t *testing.T) {
	// serial 1, thresholds 3, 9, 27, ...
	assert.Equal(t, []int{0, 1}, QualifyingSteps(1, 10, 0))
	// already-realized steps are skipped, never re-created
	assert.Equal(t, []int{1}, QualifyingSteps(1, 10, 1))
	// nothing qualifies below the first threshold
	assert.Nil(t, QualifyingSteps(1, 2, 0))
	// realization is capped by the step count
	steps := QualifyingSteps(1, 1<<62, 0)
	assert.Len(t, steps, domain.MaxBonusSteps)
}
