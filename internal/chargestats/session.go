package chargestats

import (
	"fmt"
	"strings"

	"github.com/The-PhoenixOS/hardware-google-pixel/internal/logger"
)

// sessionRecord is one assembled charge session: slot values in
// field-ID order plus the populated-slot count (10 without side
// channels, 17 with wireless and/or PCA data).
type sessionRecord struct {
	slots [chargeStatsSlots]int32
	size  int
}

// assembleSession builds a session record from the resolved summary
// line and the optional side channels. wirelessText carries the two
// head lines of the wireless log (adapter type, adapter capabilities),
// pcaText the single PCA negotiation line, pdoText the generic-charger
// contents scanned for a PDO backfill line.
func assembleSession(line, wirelessText, pcaText, pdoText string, wireless WirelessStats) (*sessionRecord, error) {
	logger.Debug().Str("line", line).Msg("Processing charge stats")

	summary, err := resolveSummary(line)
	if err != nil {
		return nil, err
	}

	rec := &sessionRecord{size: baseSessionSlots}
	copy(rec.slots[:], summary.values[:])

	wlineAT, wlineAC := headLines(wirelessText)
	hasWireless := wlineAT != ""
	if hasWireless {
		rec.mergeWireless(wlineAT, wlineAC, wireless)
	}

	if pcaLine, _ := headLines(pcaText); pcaLine != "" {
		rec.mergePCA(pcaLine, hasWireless)
	}

	if pdoText != "" {
		rec.mergePDO(pdoText)
	}

	return rec, nil
}

// mergeWireless translates the adapter mode into slot 0 and fills the
// adapter-capability and receiver-state slots from the D: line.
func (rec *sessionRecord) mergeWireless(wlineAT, wlineAC string, wireless WirelessStats) {
	var sysMode int32

	logger.Debug().Str("line", wlineAT).Msg("Processing wireless adapter type")
	if n, _ := fmt.Sscanf(wlineAT, "A:%d", &sysMode); n != 1 {
		logger.Error().Str("line", wlineAT).Msg("Couldn't process wireless adapter type")
		return
	}
	rec.slots[0] = wireless.TranslateAdapterMode(sysMode)

	logger.Debug().Str("line", wlineAC).Msg("Processing wireless adapter capabilities")
	n, _ := fmt.Sscanf(wlineAC, "D:%x,%x,%x,%x,%x, %x,%x",
		&rec.slots[10], &rec.slots[11], &rec.slots[12], &rec.slots[13],
		&rec.slots[14], &rec.slots[15], &rec.slots[16])
	if n != wlcSessionSlots {
		logger.Error().Str("line", wlineAC).Msg("Couldn't process wireless adapter capabilities")
		return
	}

	rec.size = chargeStatsSlots
}

// mergePCA applies the PD/PPS negotiation fields. The receiver-state
// slots always come from PCA; the adapter-capability slots and the PPS
// adapter type are applied only when no wireless channel is present,
// since wireless owns the adapter classification when both exist.
func (rec *sessionRecord) mergePCA(pcaLine string, hasWireless bool) {
	var ac [2]int32
	var rs [5]int32

	logger.Debug().Str("line", pcaLine).Msg("Processing pca stats")
	n, _ := fmt.Sscanf(pcaLine, "D:%x,%x %x,%x,%x,%x,%x",
		&ac[0], &ac[1], &rs[0], &rs[1], &rs[2], &rs[3], &rs[4])
	if n != 7 {
		logger.Error().Str("line", pcaLine).Msg("Couldn't process pca stats")
		return
	}

	rec.size = chargeStatsSlots
	rec.slots[12] = rs[2]
	rec.slots[13] = rs[3]
	rec.slots[14] = rs[4]
	rec.slots[16] = rs[1]
	if !hasWireless {
		rec.slots[0] = adapterTypeUSBPDPPS
		rec.slots[10] = ac[0]
		rec.slots[11] = ac[1]
		rec.slots[15] = rs[0]
	}
}

// mergePDO backfills the APDO and PDO slots from the first matching
// generic-charger line. Runs last and overrides wireless/PCA values.
func (rec *sessionRecord) mergePDO(pdoText string) {
	var ac [2]int32
	var rs [5]int32

	for _, pdoLine := range splitLines(pdoText) {
		n, _ := fmt.Sscanf(pdoLine, "D:%x,%x,%x,%x,%x,%x,%x",
			&ac[0], &ac[1], &rs[0], &rs[1], &rs[2], &rs[3], &rs[4])
		if n != 7 {
			continue
		}

		logger.Debug().
			Str("line", pdoLine).
			Int32("apdo", ac[1]).
			Int32("pdo", rs[4]).
			Msg("Processed pdo line")
		rec.slots[15] = ac[1] // APDO
		rec.slots[16] = rs[4] // PDO
		break
	}
}

// headLines returns the first two lines of a snapshot's contents.
func headLines(contents string) (first, second string) {
	lines := splitLines(contents)
	if len(lines) > 0 {
		first = lines[0]
	}
	if len(lines) > 1 {
		second = lines[1]
	}

	return first, second
}

func splitLines(contents string) []string {
	if contents == "" {
		return nil
	}

	lines := strings.Split(strings.ReplaceAll(contents, "\r\n", "\n"), "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}
