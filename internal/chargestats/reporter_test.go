package chargestats

import (
	"context"
	"testing"

	"github.com/The-PhoenixOS/hardware-google-pixel/internal/errors"
	"github.com/The-PhoenixOS/hardware-google-pixel/internal/source"
	"github.com/The-PhoenixOS/hardware-google-pixel/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore serves canned source contents and records clears.
type fakeStore struct {
	contents map[source.ID]string
	cleared  map[source.ID]int
	clearErr map[source.ID]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		contents: make(map[source.ID]string),
		cleared:  make(map[source.ID]int),
		clearErr: make(map[source.ID]bool),
	}
}

func (s *fakeStore) Read(id source.ID) (string, error) {
	contents, ok := s.contents[id]
	if !ok {
		return "", errors.New().New(source.ErrReadFailed)
	}
	return contents, nil
}

func (s *fakeStore) Clear(id source.ID) error {
	if s.clearErr[id] {
		return errors.New().New(source.ErrClearFailed)
	}
	s.cleared[id]++
	s.contents[id] = "0"
	return nil
}

func (s *fakeStore) Acquire(id source.ID) source.Snapshot {
	contents, err := s.Read(id)
	if err != nil {
		return source.Snapshot{Source: id}
	}
	_ = s.Clear(id)
	return source.Snapshot{Source: id, Contents: contents, Present: true}
}

// fakeSink collects reported records.
type fakeSink struct {
	records []*telemetry.Record
	fail    bool
}

func (s *fakeSink) Report(_ context.Context, record *telemetry.Record) error {
	if s.fail {
		return errors.New().New(telemetry.ErrReportFailed)
	}
	s.records = append(s.records, record)
	return nil
}

func (s *fakeSink) Close() error {
	return nil
}

func (s *fakeSink) atoms() []telemetry.AtomID {
	atoms := make([]telemetry.AtomID, 0, len(s.records))
	for _, r := range s.records {
		atoms = append(atoms, r.Atom)
	}
	return atoms
}

func newTestReporter(store source.Store, sink telemetry.Reporter, secs int64) *Reporter {
	gate := NewThrottleGate(&fakeClock{secs: secs})
	return NewReporter(store, &stubWireless{}, gate, sink)
}

func TestDrainFullCycle(t *testing.T) {
	store := newFakeStore()
	store.contents[source.Charger] = baseSummary + "\n" +
		tierLine + "\n" +
		"not a tier line\n" +
		"2, 90.0,1300,330, 11,6,3, 16,19,23, -210,-160,-110, 51,56,61\n"
	store.contents[source.Thermal] = tierLine + "\n"

	sink := &fakeSink{}
	reporter := newTestReporter(store, sink, 100)
	reporter.Drain(context.Background(), source.Charger)

	require.Equal(t, []telemetry.AtomID{
		telemetry.AtomChargeStats,
		telemetry.AtomVoltageTierStats,
		telemetry.AtomVoltageTierStats,
		telemetry.AtomVoltageTierStats,
	}, sink.atoms(), "one session, two primary tiers, one thermal tier")

	session := sink.records[0]
	require.Len(t, session.Values, chargeStatsSlots)
	assert.Equal(t, int32(3), session.Values[0].Int)
	assert.Equal(t, int32(4450), session.Values[6].Int)

	tier := sink.records[1]
	require.Len(t, tier.Values, voltageTierSlots)
	assert.Equal(t, telemetry.FloatKind, tier.Values[1].Kind)
	assert.InDelta(t, 85.5, tier.Values[1].Float, 0.001)

	assert.Equal(t, 1, store.cleared[source.Charger], "primary cleared after read")
	assert.Equal(t, 1, store.cleared[source.Thermal])
}

func TestDrainUnreadablePrimaryAborts(t *testing.T) {
	store := newFakeStore()
	store.contents[source.Thermal] = tierLine + "\n"

	sink := &fakeSink{}
	reporter := newTestReporter(store, sink, 100)
	reporter.Drain(context.Background(), source.Charger)

	assert.Empty(t, sink.records, "unreadable primary source aborts the whole drain")
	assert.Zero(t, store.cleared[source.Thermal])
}

func TestDrainMalformedSummaryAborts(t *testing.T) {
	store := newFakeStore()
	store.contents[source.Charger] = "not a summary\n" + tierLine + "\n"
	store.contents[source.Thermal] = tierLine + "\n"

	sink := &fakeSink{}
	reporter := newTestReporter(store, sink, 100)
	reporter.Drain(context.Background(), source.Charger)

	assert.Empty(t, sink.records)
}

func TestDrainThrottledSessionSkipsToTierSources(t *testing.T) {
	store := newFakeStore()
	store.contents[source.Charger] = baseSummary + "\n" + tierLine + "\n"
	store.contents[source.Wireless] = wirelessHead
	store.contents[source.DualBatt] = tierLine + "\n"

	sink := &fakeSink{}
	gate := NewThrottleGate(&fakeClock{secs: 100})
	_, err := gate.ShouldReport() // burn the window
	require.NoError(t, err)

	reporter := NewReporter(store, &stubWireless{}, gate, sink)
	reporter.Drain(context.Background(), source.Charger)

	require.Equal(t, []telemetry.AtomID{telemetry.AtomVoltageTierStats}, sink.atoms(),
		"session and its tier lines dropped, tier-only sources still drained")
	assert.Contains(t, store.contents[source.Wireless], "A:",
		"side channels not consumed for a rejected session")
}

func TestDrainUnreadableClockSkipsToTierSources(t *testing.T) {
	store := newFakeStore()
	store.contents[source.Charger] = baseSummary + "\n"
	store.contents[source.GCharger] = tierLine + "\n"

	sink := &fakeSink{}
	reporter := newTestReporter(store, sink, 0)
	reporter.Drain(context.Background(), source.Charger)

	require.Equal(t, []telemetry.AtomID{telemetry.AtomVoltageTierStats}, sink.atoms())
}

func TestDrainClearFailureStillEmits(t *testing.T) {
	store := newFakeStore()
	store.contents[source.Charger] = baseSummary + "\n"
	store.clearErr[source.Charger] = true

	sink := &fakeSink{}
	reporter := newTestReporter(store, sink, 100)
	reporter.Drain(context.Background(), source.Charger)

	require.Equal(t, []telemetry.AtomID{telemetry.AtomChargeStats}, sink.atoms())
}

func TestDrainWirelessSessionAndTiers(t *testing.T) {
	store := newFakeStore()
	store.contents[source.Charger] = baseSummary + "\n" + tierLine + "\n"
	store.contents[source.Wireless] = wirelessHead

	sink := &fakeSink{}
	gate := NewThrottleGate(&fakeClock{secs: 100})
	wireless := &stubWireless{tierStats: TierPowerStats{PoutMin: 1, PoutAvg: 2, PoutMax: 3, OpFreq: 4}}
	reporter := NewReporter(store, wireless, gate, sink)
	reporter.Drain(context.Background(), source.Charger)

	require.Len(t, sink.records, 2)
	assert.Equal(t, 1, wireless.resets, "tier cursor reset once per drain")

	session := sink.records[0]
	assert.Equal(t, int32(102), session.Values[0].Int)
	assert.Equal(t, int32(7), session.Values[16].Int)

	tier := sink.records[1]
	assert.Equal(t, int32(1), tier.Values[16].Int, "min adapter power out")
	assert.Equal(t, int32(4), tier.Values[19].Int, "operating frequency")
}

func TestDrainSinkFailureTolerated(t *testing.T) {
	store := newFakeStore()
	store.contents[source.Charger] = baseSummary + "\n" + tierLine + "\n"

	sink := &fakeSink{fail: true}
	reporter := newTestReporter(store, sink, 100)

	// Must not panic or abort; failures are logged and dropped.
	reporter.Drain(context.Background(), source.Charger)
	assert.Empty(t, sink.records)
}
