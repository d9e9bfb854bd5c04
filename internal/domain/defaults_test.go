package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstNonZero(t *testing.T) {
	assert.Equal(t, "b", FirstNonZero("", "b", "c"))
	assert.Equal(t, "", FirstNonZero[string]())
	assert.Equal(t, PlanPaused, FirstNonZero(PlanStatus(""), PlanPaused, PlanActive))
}

func TestValueOr(t *testing.T) {
	f, tr := false, true
	assert.False(t, ValueOr(true, &f, &tr), "an explicit false wins over later values")
	assert.True(t, ValueOr(true, nil, nil))

	n := 45
	assert.Equal(t, 45, ValueOr(0, nil, &n))
}
