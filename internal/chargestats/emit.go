package chargestats

import (
	"context"

	"github.com/The-PhoenixOS/hardware-google-pixel/internal/logger"
	"github.com/The-PhoenixOS/hardware-google-pixel/internal/telemetry"
)

// The emitter materializes a record's populated slots into the sink's
// dense value array. Slots never written stay at their kind's zero
// value; gaps do not shift later slots because each slot lands at its
// own field offset.

func (r *Reporter) emitSession(ctx context.Context, rec *sessionRecord) {
	values := make([]telemetry.Value, chargeStatsSlots)
	for i := 0; i < rec.size; i++ {
		values[chargeStatsFields[i]-vendorAtomOffset] = telemetry.IntValue(rec.slots[i])
	}

	r.report(ctx, &telemetry.Record{
		Atom:   telemetry.AtomChargeStats,
		Values: values,
	})
}

func (r *Reporter) emitTierSample(ctx context.Context, s *tierSample) {
	values := make([]telemetry.Value, voltageTierSlots)
	values[voltageTierFields[0]-vendorAtomOffset] = telemetry.IntValue(s.tier)
	values[voltageTierFields[1]-vendorAtomOffset] = telemetry.FloatValue(s.ssoc)
	for i := 2; i < s.size; i++ {
		values[voltageTierFields[i]-vendorAtomOffset] = telemetry.IntValue(s.ints[i-2])
	}

	r.report(ctx, &telemetry.Record{
		Atom:   telemetry.AtomVoltageTierStats,
		Values: values,
	})
}

// report is fire-and-forget: sink failures are logged and dropped, they
// never fail the drain.
func (r *Reporter) report(ctx context.Context, record *telemetry.Record) {
	if err := r.sink.Report(ctx, record); err != nil {
		logger.Error().
			Err(err).
			Int32("atom", int32(record.Atom)).
			Msg("Unable to report record to telemetry sink")
	}
}
