/*
Package timeframe models the simulated time horizon of a system model as an
equidistant timestamp range.
*/
package timeframe

import (
	"fmt"
	"sort"
	"time"
)

// Timeframe is an equidistant range of timestamps. The zero value is the
// empty timeframe.
type Timeframe struct {
	start   time.Time
	periods int
	freq    time.Duration
}

// New returns a timeframe of periods timestamps starting at start and
// spaced by freq.
func New(start time.Time, periods int, freq time.Duration) (Timeframe, error) {
	if periods < 0 {
		return Timeframe{}, fmt.Errorf("timeframe: negative period count %d", periods)
	}
	if periods > 1 && freq <= 0 {
		return Timeframe{}, fmt.Errorf("timeframe: nonpositive frequency %v", freq)
	}
	return Timeframe{start: start.UTC(), periods: periods, freq: freq}, nil
}

// FromStamps reconstructs a timeframe from explicit timestamps. The stamps
// are sorted first; the frequency is inferred from the first gap and every
// following gap must match it.
func FromStamps(stamps []time.Time) (Timeframe, error) {
	if len(stamps) == 0 {
		return Timeframe{}, nil
	}

	sorted := make([]time.Time, len(stamps))
	copy(sorted, stamps)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	if len(sorted) == 1 {
		return New(sorted[0], 1, 0)
	}

	freq := sorted[1].Sub(sorted[0])
	for i := 2; i < len(sorted); i++ {
		if gap := sorted[i].Sub(sorted[i-1]); gap != freq {
			return Timeframe{}, fmt.Errorf(
				"timeframe: uneven spacing, gap %v at index %d does not match inferred frequency %v",
				gap, i, freq)
		}
	}
	return New(sorted[0], len(sorted), freq)
}

// Start returns the first timestamp of the range.
func (tf Timeframe) Start() time.Time { return tf.start }

// Periods returns the number of timestamps.
func (tf Timeframe) Periods() int { return tf.periods }

// Freq returns the spacing between consecutive timestamps.
func (tf Timeframe) Freq() time.Duration { return tf.freq }

// Empty reports whether the timeframe holds no timestamps.
func (tf Timeframe) Empty() bool { return tf.periods == 0 }

// Stamps expands the range into its timestamps.
func (tf Timeframe) Stamps() []time.Time {
	stamps := make([]time.Time, tf.periods)
	for i := range stamps {
		stamps[i] = tf.start.Add(time.Duration(i) * tf.freq)
	}
	return stamps
}

// End returns the last timestamp of the range. The zero time is returned
// for an empty timeframe.
func (tf Timeframe) End() time.Time {
	if tf.Empty() {
		return time.Time{}
	}
	return tf.start.Add(time.Duration(tf.periods-1) * tf.freq)
}

// Equal reports whether both timeframes expand to the same timestamps.
func (tf Timeframe) Equal(other Timeframe) bool {
	if tf.periods != other.periods {
		return false
	}
	if tf.periods == 0 {
		return true
	}
	if !tf.start.Equal(other.start) {
		return false
	}
	return tf.periods == 1 || tf.freq == other.freq
}

func (tf Timeframe) String() string {
	if tf.Empty() {
		return "empty timeframe"
	}
	return fmt.Sprintf("%d x %v from %s", tf.periods, tf.freq, tf.start.Format(time.RFC3339))
}
