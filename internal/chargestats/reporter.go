package chargestats

import (
	"context"

	"github.com/The-PhoenixOS/hardware-google-pixel/internal/errors"
	"github.com/The-PhoenixOS/hardware-google-pixel/internal/logger"
	"github.com/The-PhoenixOS/hardware-google-pixel/internal/source"
	"github.com/The-PhoenixOS/hardware-google-pixel/internal/telemetry"
)

// Sources whose tier logs are drained on their own, outside the
// session path and its throttle decision.
var tierOnlySources = []source.ID{
	source.Thermal,
	source.GCharger,
	source.DualBatt,
}

// Reporter runs drain cycles: it reconciles the charge-event logs into
// session and tier records and hands them to the telemetry sink.
type Reporter struct {
	store    source.Store
	wireless WirelessStats
	gate     *ThrottleGate
	sink     telemetry.Reporter
}

func NewReporter(store source.Store, wireless WirelessStats, gate *ThrottleGate, sink telemetry.Reporter) *Reporter {
	return &Reporter{
		store:    store,
		wireless: wireless,
		gate:     gate,
		sink:     sink,
	}
}

// Drain performs one full cycle over the primary source and every
// auxiliary tier source. An unreadable primary source or an
// unparseable summary line ends the cycle early; everything else
// degrades and continues.
func (r *Reporter) Drain(ctx context.Context, primary source.ID) {
	if !r.drainPrimary(ctx, primary) {
		return
	}

	for _, id := range tierOnlySources {
		r.drainTierSource(ctx, id)
	}
}

// drainPrimary handles the summary line and its tier lines. The return
// value says whether the cycle may continue to the tier-only sources.
func (r *Reporter) drainPrimary(ctx context.Context, primary source.ID) bool {
	contents, err := r.store.Read(primary)
	if err != nil {
		logger.Error().Err(err).Str("source", string(primary)).Msg("Unable to read primary source")
		return false
	}

	lines := splitLines(contents)
	if len(lines) == 0 {
		err := errors.New().WithData(ErrEmptyPrimarySource, string(primary))
		logger.ErrorWithCode(err).Msg("Unable to read first line")
		return false
	}

	if err := r.store.Clear(primary); err != nil {
		logger.Error().Err(err).Str("source", string(primary)).Msg("Couldn't clear primary source")
	}

	ok, err := r.gate.ShouldReport()
	if err != nil {
		logger.Error().Err(err).Msg("Current boot time is unreadable")
		return true
	}
	if !ok {
		logger.Warn().Msg("Too many log events; event ignored")
		return true
	}

	// Side channels are consumed only for accepted sessions, so a
	// rejected session does not burn their contents.
	pca := r.store.Acquire(source.PCA)
	wireless := r.store.Acquire(source.Wireless)
	if wireless.Present {
		r.wireless.ResetTier()
	}

	// Non-consuming read: the generic-charger log is drained as a tier
	// source later in this cycle.
	pdoText, _ := r.store.Read(source.GCharger)

	rec, err := assembleSession(lines[0], wireless.Contents, pca.Contents, pdoText, r.wireless)
	if err != nil {
		logger.Error().Err(err).Str("line", lines[0]).Msg("Couldn't process summary line")
		return false
	}
	r.emitSession(ctx, rec)

	for _, line := range lines[1:] {
		s, ok := parseTierSample(line)
		if !ok {
			continue
		}
		if wireless.Present {
			s.augmentWireless(r.wireless, wireless.Contents)
		}
		logger.Debug().Str("line", line).Msg("Processed voltage tier line")
		r.emitTierSample(ctx, &s)
	}

	return true
}

// drainTierSource reads, clears and emits one auxiliary tier log.
func (r *Reporter) drainTierSource(ctx context.Context, id source.ID) {
	snapshot := r.store.Acquire(id)
	if !snapshot.Present {
		return
	}

	for _, line := range splitLines(snapshot.Contents) {
		s, ok := parseTierSample(line)
		if !ok {
			continue
		}
		logger.Debug().Str("source", string(id)).Str("line", line).Msg("Processed voltage tier line")
		r.emitTierSample(ctx, &s)
	}
}
