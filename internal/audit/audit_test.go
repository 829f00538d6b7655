package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleEvent_Bounds(t *testing.T) {
	assert.False(t, SampleEvent(0))
	assert.False(t, SampleEvent(-1))
	assert.True(t, SampleEvent(1))
	assert.True(t, SampleEvent(2))
}

func TestSampleEvent_FractionalRateIsProbabilistic(t *testing.T) {
	hits := 0
	for i := 0; i < 10000; i++ {
		if SampleEvent(0.5) {
			hits++
		}
	}
	assert.Greater(t, hits, 3000)
	assert.Less(t, hits, 7000)
}
