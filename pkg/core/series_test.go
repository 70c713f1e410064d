package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeries_ValuesLengthLast(t *testing.T) {
	s := Series[float64]{1, 2, 3, 4}
	assert.Equal(t, []float64{1, 2, 3, 4}, s.Values())
	assert.Equal(t, 4, s.Length())
	assert.Equal(t, 4.0, s.Last(0))
	assert.Equal(t, 3.0, s.Last(1))
}

func TestSeries_LastValues(t *testing.T) {
	s := Series[float64]{1, 2, 3, 4, 5}
	assert.Equal(t, Series[float64]{3, 4, 5}, s.LastValues(3))
	assert.Equal(t, s, s.LastValues(10))
}

func TestSeries_CrossoverDetectsUpwardCross(t *testing.T) {
	fast := Series[float64]{9, 11}
	slow := Series[float64]{10, 10}
	assert.True(t, fast.Crossover(slow))
	assert.False(t, fast.Crossunder(slow))
}

func TestSeries_CrossunderDetectsDownwardCross(t *testing.T) {
	fast := Series[float64]{11, 9}
	slow := Series[float64]{10, 10}
	assert.True(t, fast.Crossunder(slow))
	assert.False(t, fast.Crossover(slow))
}

func TestSeries_CrossIsEitherDirection(t *testing.T) {
	up := Series[float64]{9, 11}
	flat := Series[float64]{10, 10}
	assert.True(t, up.Cross(flat))

	noCross := Series[float64]{12, 13}
	assert.False(t, noCross.Cross(flat))
}

func TestSeries_NoCrossWhenAlreadyAboveOrBelow(t *testing.T) {
	fast := Series[float64]{11, 12}
	slow := Series[float64]{10, 10}
	assert.False(t, fast.Crossover(slow))
	assert.False(t, fast.Crossunder(slow))
}

func TestNumDecPlaces(t *testing.T) {
	assert.Equal(t, int64(0), NumDecPlaces(5))
	assert.Equal(t, int64(2), NumDecPlaces(5.12))
	assert.Equal(t, int64(4), NumDecPlaces(0.1234))
}
