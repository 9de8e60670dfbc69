package column

import "github.com/EvilMcJerkface/hyrise/format"

// Statistics summarizes the shape of a value sequence for encoding
// selection: how many distinct values it holds and how long its runs are.
type Statistics struct {
	RowCount      int
	DistinctCount int
	RunCount      int
}

// DistinctRatio returns distinct values per row, in [0,1].
func (s Statistics) DistinctRatio() float64 {
	if s.RowCount == 0 {
		return 0
	}

	return float64(s.DistinctCount) / float64(s.RowCount)
}

// MeanRunLength returns the average number of consecutive equal rows.
func (s Statistics) MeanRunLength() float64 {
	if s.RunCount == 0 {
		return 0
	}

	return float64(s.RowCount) / float64(s.RunCount)
}

// Analyze computes Statistics in one pass. Null rows count as one shared
// pseudo-value, matching how both encoders treat them.
func Analyze[T Scalar](valueColumn *ValueColumn[T]) Statistics {
	values := valueColumn.Values()
	nulls := valueColumn.NullMask()
	nullable := valueColumn.IsNullable()

	distinct := make(map[T]struct{}, min(len(values), 4096))
	sawNull := false
	sawNaN := false

	stats := Statistics{RowCount: len(values)}

	var prev T
	prevNull := false
	for i, v := range values {
		isNull := nullable && nulls[i]
		switch {
		case isNull:
			sawNull = true
		case isNaNValue(v):
			// NaN map keys never compare equal, so keying the map on them
			// would count every NaN row as a fresh distinct value. The
			// dictionary encoder folds all NaNs into one entry; count them
			// the same way here.
			sawNaN = true
		default:
			distinct[v] = struct{}{}
		}

		changed := i == 0 || isNull != prevNull || (!isNull && !sameValue(v, prev))
		if changed {
			stats.RunCount++
		}
		prev, prevNull = v, isNull
	}

	stats.DistinctCount = len(distinct)
	if sawNull {
		stats.DistinctCount++
	}
	if sawNaN {
		stats.DistinctCount++
	}

	return stats
}

// Thresholds for SuggestEncoding. Long runs favor the run table; low
// distinct ratios favor the dictionary; everything else stays plain.
const (
	runLengthMeanRunThreshold  = 4.0
	dictionaryDistinctRatioMax = 0.5
)

// SuggestEncoding recommends an encoding for a value column from its
// statistics. The recommendation is a heuristic, not a contract: callers
// remain free to pick any encoding.
func SuggestEncoding[T Scalar](valueColumn *ValueColumn[T]) (EncodingSuggestion, Statistics) {
	stats := Analyze(valueColumn)

	switch {
	case stats.RowCount == 0:
		return SuggestUnencoded, stats
	case stats.MeanRunLength() >= runLengthMeanRunThreshold:
		return SuggestRunLength, stats
	case stats.DistinctRatio() <= dictionaryDistinctRatioMax:
		return SuggestDictionary, stats
	default:
		return SuggestUnencoded, stats
	}
}

// EncodingSuggestion is the outcome of SuggestEncoding.
type EncodingSuggestion uint8

const (
	SuggestUnencoded EncodingSuggestion = iota
	SuggestDictionary
	SuggestRunLength
)

// EncodingType maps the suggestion to the encoding it names, ready to pass
// to EncodeColumn.
func (s EncodingSuggestion) EncodingType() format.EncodingType {
	switch s {
	case SuggestDictionary:
		return format.EncodingDictionary
	case SuggestRunLength:
		return format.EncodingRunLength
	default:
		return format.EncodingUnencoded
	}
}

func (s EncodingSuggestion) String() string {
	switch s {
	case SuggestUnencoded:
		return "Unencoded"
	case SuggestDictionary:
		return "Dictionary"
	case SuggestRunLength:
		return "RunLength"
	default:
		return "Unknown"
	}
}
