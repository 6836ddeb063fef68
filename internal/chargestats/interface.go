package chargestats

// TierPowerStats are the wireless-derived values appended to a voltage
// tier sample.
type TierPowerStats struct {
	PoutMin int32
	PoutAvg int32
	PoutMax int32
	OpFreq  int32
}

// WirelessStats is the capability surface owned by the wireless
// subsystem model.
type WirelessStats interface {
	// TranslateAdapterMode maps the sys_mode integer from the wireless
	// log head into the adapter-type atom value.
	TranslateAdapterMode(sysMode int32) int32

	// CalculateTierStats derives power-out and operating-frequency
	// values for the tier that covers ssoc from the wireless log tail.
	CalculateTierStats(ssoc int32, contents string) TierPowerStats

	// ResetTier rewinds the per-drain tier cursor.
	ResetTier()
}
