package translate

import (
	"math"
	"strconv"
	"time"

	"github.com/storyq/storyq/pkg/query/parser"
	"github.com/storyq/storyq/pkg/query/predicate"
)

// Months are 30 days and years 365 days.
//
//nolint:gochecknoglobals
var unitSeconds = map[string]int64{
	"seconds": 1, "second": 1, "sec": 1, "s": 1,
	"minutes": 60, "minute": 60, "min": 60, "m": 60,
	"hours": 3600, "hour": 3600, "hr": 3600, "h": 3600,
	"days": 86400, "day": 86400, "d": 86400,
	"weeks": 604800, "week": 604800, "w": 604800,
	"months": 2592000, "month": 2592000, "mon": 2592000,
	"years": 31536000, "year": 31536000, "y": 31536000,
}

const maxAgeSeconds = math.MaxInt64 / int64(time.Second)

// AgeSeconds scales n by unit. An unknown unit leaves n as seconds.
func AgeSeconds(n int64, unit string) int64 {
	scale, ok := unitSeconds[unit]
	if !ok {
		return n
	}

	if n > math.MaxInt64/scale {
		return math.MaxInt64
	}

	return n * scale
}

func ageOf(term parser.Term) (int64, error) {
	seconds := AgeSeconds(*term.Number, *term.String)
	if seconds > maxAgeSeconds {
		return 0, parser.NewUnsupportedValueError(term.Kind.String(), formatAge(term), term.Pos, "duration out of range")
	}

	return seconds, nil
}

func formatAge(term parser.Term) string {
	return strconv.FormatInt(*term.Number, 10) + *term.String
}

func (t *Translator) age(term parser.Term) (predicate.Predicate, error) {
	seconds, err := ageOf(term)
	if err != nil {
		return nil, err
	}

	cutoff := t.now.Add(-time.Duration(seconds) * time.Second)

	return predicate.Compare{Column: predicate.StoryUpdated, Operator: predicate.Less, Value: cutoff}, nil
}

// recentlySeen is relative to the most recently seen story in the cache,
// not to the wall clock.
func (t *Translator) recentlySeen(term parser.Term) (predicate.Predicate, error) {
	seconds, err := ageOf(term)
	if err != nil {
		return nil, err
	}

	return predicate.Compare{
		Column:   predicate.StoryLastSeen,
		Operator: predicate.GreaterEquals,
		Value:    predicate.MaxOffset{Column: predicate.StoryLastSeen, Seconds: seconds},
	}, nil
}
