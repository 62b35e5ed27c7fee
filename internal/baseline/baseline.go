// Package baseline holds the static age-to-sleep-parameter table the rest of
// the pipeline seeds and bounds itself against. All durations are minutes.
package baseline

// Kind selects which bounds Clamp applies.
type Kind string

const (
	KindWakeWindow Kind = "wake_window"
	KindNapLength  Kind = "nap_length"
)

// Bracket is one contiguous age range with its expected sleep parameters.
type Bracket struct {
	MinAgeMonths int
	MaxAgeMonths int

	WakeWindowMin     int
	WakeWindowTypical int
	WakeWindowMax     int

	NapLengthMin     int
	NapLengthTypical int
	NapLengthMax     int

	NapsPerDay int

	DaySleepMin int
	DaySleepMax int
}

// brackets covers every non-negative age with no gaps. Values follow the
// usual pediatric wake-window guidance; the last bracket doubles as the
// fallback for any age past its stated maximum.
var brackets = []Bracket{
	{
		MinAgeMonths: 0, MaxAgeMonths: 2,
		WakeWindowMin: 45, WakeWindowTypical: 60, WakeWindowMax: 90,
		NapLengthMin: 30, NapLengthTypical: 60, NapLengthMax: 120,
		NapsPerDay:  5,
		DaySleepMin: 300, DaySleepMax: 480,
	},
	{
		MinAgeMonths: 3, MaxAgeMonths: 4,
		WakeWindowMin: 75, WakeWindowTypical: 90, WakeWindowMax: 120,
		NapLengthMin: 30, NapLengthTypical: 60, NapLengthMax: 120,
		NapsPerDay:  4,
		DaySleepMin: 240, DaySleepMax: 300,
	},
	{
		MinAgeMonths: 5, MaxAgeMonths: 6,
		WakeWindowMin: 105, WakeWindowTypical: 135, WakeWindowMax: 165,
		NapLengthMin: 45, NapLengthTypical: 75, NapLengthMax: 120,
		NapsPerDay:  3,
		DaySleepMin: 180, DaySleepMax: 240,
	},
	{
		MinAgeMonths: 7, MaxAgeMonths: 9,
		WakeWindowMin: 135, WakeWindowTypical: 165, WakeWindowMax: 210,
		NapLengthMin: 60, NapLengthTypical: 90, NapLengthMax: 120,
		NapsPerDay:  2,
		DaySleepMin: 150, DaySleepMax: 210,
	},
	{
		MinAgeMonths: 10, MaxAgeMonths: 12,
		WakeWindowMin: 180, WakeWindowTypical: 210, WakeWindowMax: 240,
		NapLengthMin: 60, NapLengthTypical: 90, NapLengthMax: 120,
		NapsPerDay:  2,
		DaySleepMin: 120, DaySleepMax: 180,
	},
	{
		MinAgeMonths: 13, MaxAgeMonths: 17,
		WakeWindowMin: 240, WakeWindowTypical: 300, WakeWindowMax: 360,
		NapLengthMin: 90, NapLengthTypical: 120, NapLengthMax: 180,
		NapsPerDay:  1,
		DaySleepMin: 90, DaySleepMax: 180,
	},
	{
		MinAgeMonths: 18, MaxAgeMonths: 24,
		WakeWindowMin: 300, WakeWindowTypical: 330, WakeWindowMax: 360,
		NapLengthMin: 90, NapLengthTypical: 120, NapLengthMax: 150,
		NapsPerDay:  1,
		DaySleepMin: 90, DaySleepMax: 150,
	},
	{
		MinAgeMonths: 25, MaxAgeMonths: 48,
		WakeWindowMin: 330, WakeWindowTypical: 360, WakeWindowMax: 420,
		NapLengthMin: 60, NapLengthTypical: 90, NapLengthMax: 120,
		NapsPerDay:  1,
		DaySleepMin: 60, DaySleepMax: 120,
	},
}

// Lookup returns the bracket covering ageMonths. Ages past the table's
// maximum extrapolate with the oldest bracket rather than failing.
func Lookup(ageMonths int) Bracket {
	if ageMonths < 0 {
		ageMonths = 0
	}
	for _, b := range brackets {
		if ageMonths >= b.MinAgeMonths && ageMonths <= b.MaxAgeMonths {
			return b
		}
	}
	return brackets[len(brackets)-1]
}

// Clamp bounds value to the [min,max] range of the matching bracket for the
// requested kind.
func Clamp(value, ageMonths int, kind Kind) int {
	b := Lookup(ageMonths)
	var lo, hi int
	switch kind {
	case KindNapLength:
		lo, hi = b.NapLengthMin, b.NapLengthMax
	default:
		lo, hi = b.WakeWindowMin, b.WakeWindowMax
	}
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
