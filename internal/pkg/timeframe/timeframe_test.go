package timeframe

import (
	"testing"
	"time"

	"gotest.tools/assert"
)

func TestStamps(t *testing.T) {
	start := time.Date(2019, 10, 8, 0, 0, 0, 0, time.UTC)
	tf, err := New(start, 3, time.Hour)
	assert.NilError(t, err)

	stamps := tf.Stamps()
	assert.Equal(t, len(stamps), 3)
	assert.Assert(t, stamps[0].Equal(start))
	assert.Assert(t, stamps[2].Equal(start.Add(2*time.Hour)))
	assert.Assert(t, tf.End().Equal(start.Add(2*time.Hour)))
}

func TestFromStampsInfersFrequency(t *testing.T) {
	start := time.Date(2019, 10, 8, 0, 0, 0, 0, time.UTC)
	stamps := []time.Time{
		start.Add(2 * time.Hour),
		start,
		start.Add(time.Hour),
	}

	tf, err := FromStamps(stamps)
	assert.NilError(t, err)
	assert.Equal(t, tf.Periods(), 3)
	assert.Equal(t, tf.Freq(), time.Hour)
	assert.Assert(t, tf.Start().Equal(start))
}

func TestFromStampsRejectsUnevenSpacing(t *testing.T) {
	start := time.Date(2019, 10, 8, 0, 0, 0, 0, time.UTC)
	stamps := []time.Time{
		start,
		start.Add(time.Hour),
		start.Add(3 * time.Hour),
	}

	_, err := FromStamps(stamps)
	assert.ErrorContains(t, err, "uneven spacing")
}

func TestEqual(t *testing.T) {
	start := time.Date(2019, 10, 8, 0, 0, 0, 0, time.UTC)
	a, _ := New(start, 4, 15*time.Minute)
	b, _ := FromStamps(a.Stamps())

	assert.Assert(t, a.Equal(b))
	assert.Assert(t, Timeframe{}.Equal(Timeframe{}))

	c, _ := New(start, 4, 30*time.Minute)
	assert.Assert(t, !a.Equal(c))
}

func TestSingleStamp(t *testing.T) {
	start := time.Date(2019, 10, 8, 0, 0, 0, 0, time.UTC)
	tf, err := FromStamps([]time.Time{start})
	assert.NilError(t, err)
	assert.Equal(t, tf.Periods(), 1)
	assert.Assert(t, !tf.Empty())
	assert.Assert(t, tf.End().Equal(start))
}
