package source

// ID names one of the text sources produced by the power subsystems.
type ID string

const (
	Charger  ID = "charger"  // primary summary + tier log
	Wireless ID = "wireless" // wireless-charging coil stats
	PCA      ID = "pca"      // USB-PD/PPS adapter negotiation stats
	Thermal  ID = "thermal"  // thermal throttling tier log
	GCharger ID = "gcharger" // generic charger tier log + PDO lines
	DualBatt ID = "dualbatt" // dual-battery balancing tier log
)

// Snapshot is the text captured from one source at drain time.
type Snapshot struct {
	Source   ID
	Contents string
	Present  bool
}

// Store provides read-then-clear access to the named text sources.
type Store interface {
	// Read returns the current contents of the source without
	// consuming them.
	Read(id ID) (string, error)

	// Clear truncates the source so already-read contents are not
	// redelivered on the next drain.
	Clear(id ID) error

	// Acquire reads the source and then clears it. A failed read
	// yields an absent snapshot; a failed clear is logged and the
	// already-read contents are still returned.
	Acquire(id ID) Snapshot
}

// Clock reads the monotonic time since boot. A zero reading means the
// clock is unavailable.
type Clock interface {
	BootTimeSeconds() int64
}
