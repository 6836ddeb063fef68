package chargestats

import (
	"fmt"

	"github.com/The-PhoenixOS/hardware-google-pixel/internal/errors"
)

// Summary line formats, richest first. CSI and AACR lines are textual
// supersets of the base format, so trying base first would silently
// truncate them.
const (
	summaryFmtBase = "%d,%d,%d, %d,%d,%d,%d"
	summaryFmtAACR = summaryFmtBase + " %d"    // adds charge capacity
	summaryFmtCSI  = summaryFmtAACR + " %d,%d" // adds csi aggregate status,type
)

// summaryFields holds the scanned summary values in slot order. Slots
// beyond count stay zero.
type summaryFields struct {
	values [baseSessionSlots]int32
	count  int
}

type summaryParser func(line string) (summaryFields, bool)

// Ordered list of candidate formats; the resolver short-circuits on the
// first exact-count match.
var summaryFormats = []summaryParser{
	parseCSISummary,
	parseAACRSummary,
	parseBaseSummary,
}

func resolveSummary(line string) (summaryFields, error) {
	for _, parse := range summaryFormats {
		if fields, ok := parse(line); ok {
			return fields, nil
		}
	}

	return summaryFields{}, errors.New().WithData(ErrMalformedSummaryLine, line)
}

func parseCSISummary(line string) (summaryFields, bool) {
	var f summaryFields
	n, _ := fmt.Sscanf(line, summaryFmtCSI,
		&f.values[0], &f.values[1], &f.values[2], &f.values[3], &f.values[4],
		&f.values[5], &f.values[6], &f.values[7], &f.values[8], &f.values[9])
	if n != 10 {
		return summaryFields{}, false
	}
	f.count = n

	return f, true
}

func parseAACRSummary(line string) (summaryFields, bool) {
	var f summaryFields
	n, _ := fmt.Sscanf(line, summaryFmtAACR,
		&f.values[0], &f.values[1], &f.values[2], &f.values[3], &f.values[4],
		&f.values[5], &f.values[6], &f.values[7])
	if n != 8 {
		return summaryFields{}, false
	}
	f.count = n

	return f, true
}

func parseBaseSummary(line string) (summaryFields, bool) {
	var f summaryFields
	n, _ := fmt.Sscanf(line, summaryFmtBase,
		&f.values[0], &f.values[1], &f.values[2], &f.values[3], &f.values[4],
		&f.values[5], &f.values[6])
	if n != 7 {
		return summaryFields{}, false
	}
	f.count = n

	return f, true
}
