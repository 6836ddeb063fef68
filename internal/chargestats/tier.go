package chargestats

import "fmt"

// Tier lines carry a fixed 16-field schema: tier index, fractional
// state of charge, then 14 integers.
const tierFmt = "%d, %f,%d,%d, %d,%d,%d, %d,%d,%d, %d,%d,%d, %d,%d,%d"

// tierSample is one voltage-tier sample. ssoc is kept apart from the
// integer slots because it is emitted as a float. ints[0] is the
// coulomb count (slot 2); the wireless-derived values, when present,
// occupy ints[14..17].
type tierSample struct {
	tier int32
	ssoc float32
	ints [voltageTierSlots - 2]int32
	size int
}

// parseTierSample scans one tier line. A line that does not match the
// 16-field schema exactly is not an error: tier streams are noisy and
// such lines are skipped on purpose.
func parseTierSample(line string) (tierSample, bool) {
	var s tierSample
	n, _ := fmt.Sscanf(line, tierFmt,
		&s.tier, &s.ssoc,
		&s.ints[0], &s.ints[1], &s.ints[2], &s.ints[3], &s.ints[4],
		&s.ints[5], &s.ints[6], &s.ints[7], &s.ints[8], &s.ints[9],
		&s.ints[10], &s.ints[11], &s.ints[12], &s.ints[13])
	if n != baseTierSlots {
		return tierSample{}, false
	}
	s.size = baseTierSlots

	return s, true
}

// augmentWireless extends the sample with the four wireless-derived
// slots for the tier covering this sample's state of charge.
func (s *tierSample) augmentWireless(wireless WirelessStats, contents string) {
	stats := wireless.CalculateTierStats(int32(s.ssoc), contents)
	s.ints[14] = stats.PoutMin
	s.ints[15] = stats.PoutAvg
	s.ints[16] = stats.PoutMax
	s.ints[17] = stats.OpFreq
	s.size = voltageTierSlots
}
