package wireless

import (
	"fmt"
	"strings"

	"github.com/The-PhoenixOS/hardware-google-pixel/internal/chargestats"
	"github.com/The-PhoenixOS/hardware-google-pixel/internal/logger"
)

// Adapter type atom values for the wireless charging modes.
const (
	AdapterTypeWLC    int32 = 10
	AdapterTypeWLCEPP int32 = 11
	AdapterTypeWLCSPP int32 = 12
)

// sys_mode values reported in the wireless log head line.
const (
	sysModeBPP int32 = 1
	sysModeEPP int32 = 2
	sysModeSPP int32 = 3
)

// Per-tier lines in the wireless log tail: state of charge, then
// power-out min/avg/max and operating frequency.
const tierLineFmt = "W:%d, %d,%d,%d, %d"

// Stats models the wireless charging subsystem for the drain cycle. It
// keeps a tier cursor so each wireless tier entry augments at most one
// voltage tier sample per drain.
type Stats struct {
	tierSoc int32
}

func NewStats() *Stats {
	return &Stats{}
}

// TranslateAdapterMode maps the sys_mode integer into the adapter-type
// atom value. Unrecognized modes classify as plain WLC.
func (s *Stats) TranslateAdapterMode(sysMode int32) int32 {
	switch sysMode {
	case sysModeEPP:
		return AdapterTypeWLCEPP
	case sysModeSPP:
		return AdapterTypeWLCSPP
	case sysModeBPP:
		return AdapterTypeWLC
	default:
		logger.Debug().Int32("sys_mode", sysMode).Msg("Unknown wireless sys_mode")
		return AdapterTypeWLC
	}
}

// ResetTier rewinds the tier cursor; called at the start of each drain
// that carries wireless content.
func (s *Stats) ResetTier() {
	s.tierSoc = 0
}

// CalculateTierStats picks the highest tier entry above the cursor that
// this sample's state of charge has reached and advances the cursor
// past it. Samples with no covering entry get zero values.
func (s *Stats) CalculateTierStats(ssoc int32, contents string) chargestats.TierPowerStats {
	var (
		stats chargestats.TierPowerStats
		found bool
		soc   int32
	)

	for _, line := range splitLines(contents) {
		var entry chargestats.TierPowerStats
		var entrySoc int32
		n, _ := fmt.Sscanf(line, tierLineFmt,
			&entrySoc, &entry.PoutMin, &entry.PoutAvg, &entry.PoutMax, &entry.OpFreq)
		if n != 5 {
			continue
		}
		if entrySoc > s.tierSoc && entrySoc <= ssoc {
			stats = entry
			soc = entrySoc
			found = true
		}
	}

	if found {
		s.tierSoc = soc
	}

	return stats
}

func splitLines(contents string) []string {
	var lines []string
	for _, line := range strings.Split(contents, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}
