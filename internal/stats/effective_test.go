package stats

import (
	"testing"
	"time"
)

func obsAt(ts ...time.Time) []Observation {
	out := make([]Observation, len(ts))
	for i, t := range ts {
		out[i] = Observation{At: t, Value: 50}
	}
	return out
}

func TestTemporalEffectiveSampleSizeEmptyAndSingle(t *testing.T) {
	if got := TemporalEffectiveSampleSize(nil); got != 0 {
		t.Errorf("empty input = %v, want 0", got)
	}
	single := obsAt(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if got := TemporalEffectiveSampleSize(single); got != 1 {
		t.Errorf("single observation = %v, want 1", got)
	}
}

func TestTemporalEffectiveSampleSizeGapBuckets(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		gap  time.Duration
		want float64
	}{
		{"23 hours apart", 23 * time.Hour, 1.3},
		{"8 days apart", 8 * 24 * time.Hour, 1.9},
		{"36 days apart", 36 * 24 * time.Hour, 2.0},
		{"exactly 1 day", 24 * time.Hour, 1.6},
		{"exactly 30 days", 30 * 24 * time.Hour, 2.0},
	}
	for _, c := range cases {
		got := TemporalEffectiveSampleSize(obsAt(base, base.Add(c.gap)))
		if got != c.want {
			t.Errorf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}

func TestTemporalEffectiveSampleSizeOrderInsensitive(t *testing.T) {
	times := []time.Time{
		time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	shuffled := TemporalEffectiveSampleSize(obsAt(times...))
	sorted := TemporalEffectiveSampleSize(obsAt(times[1], times[3], times[2], times[0]))
	if shuffled != sorted {
		t.Errorf("unsorted input = %v, sorted input = %v, want equal", shuffled, sorted)
	}
}

func TestTemporalEffectiveSampleSizeBurstDiscount(t *testing.T) {
	// Gaps of 1 day, 8 days, 36 days: 1 + 0.6 + 0.85 + 1.0 = 3.45 -> 3.5
	got := TemporalEffectiveSampleSize(obsAt(
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
	))
	if got != 3.5 {
		t.Errorf("got %v, want 3.5", got)
	}

	// Five analyses within one hour are worth ~2.2 real samples, not 5
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	burst := obsAt(base, base.Add(10*time.Minute), base.Add(20*time.Minute), base.Add(30*time.Minute), base.Add(40*time.Minute))
	if got := TemporalEffectiveSampleSize(burst); got != 2.2 {
		t.Errorf("one-hour burst of 5 = %v, want 2.2", got)
	}
}

func TestCountEffectiveSampleSize(t *testing.T) {
	if got := CountEffectiveSampleSize([]float64{1, 2, 3}); got != 3 {
		t.Errorf("got %v, want 3", got)
	}
	if got := CountEffectiveSampleSize(nil); got != 0 {
		t.Errorf("got %v, want 0", got)
	}
}
