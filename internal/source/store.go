package source

import (
	"os"

	"github.com/The-PhoenixOS/hardware-google-pixel/internal/errors"
	"github.com/The-PhoenixOS/hardware-google-pixel/internal/logger"
)

const clearFilePerm = 0o644

// Default sysfs locations of the subsystem metrics files.
var defaultPaths = map[ID]string{
	Charger:  "/sys/class/power_supply/battery/charge_stats",
	Wireless: "/sys/class/power_supply/wireless/device/charge_stats",
	PCA:      "/sys/class/power_supply/pca9468-mains/device/chg_stats",
	Thermal:  "/sys/devices/platform/google,charger/thermal_stats",
	GCharger: "/sys/devices/platform/google,charger/charge_stats",
	DualBatt: "/sys/devices/platform/google,dual_batt_gauge/charge_stats",
}

type fileStore struct {
	paths map[ID]string
}

// NewStore builds a file-backed store. Entries in overrides replace the
// default sysfs path for the named source.
func NewStore(overrides map[string]string) Store {
	paths := make(map[ID]string, len(defaultPaths))
	for id, path := range defaultPaths {
		paths[id] = path
	}
	for name, path := range overrides {
		paths[ID(name)] = path
	}

	return &fileStore{paths: paths}
}

func (s *fileStore) Read(id ID) (string, error) {
	errFactory := errors.New()

	path, ok := s.paths[id]
	if !ok {
		return "", errFactory.WithData(ErrUnknownSource, string(id))
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return "", errFactory.Wrap(ErrReadFailed, err)
	}

	return string(contents), nil
}

func (s *fileStore) Clear(id ID) error {
	errFactory := errors.New()

	path, ok := s.paths[id]
	if !ok {
		return errFactory.WithData(ErrUnknownSource, string(id))
	}

	// Writing "0" resets the kernel-side log.
	if err := os.WriteFile(path, []byte("0"), clearFilePerm); err != nil {
		return errFactory.Wrap(ErrClearFailed, err)
	}

	return nil
}

func (s *fileStore) Acquire(id ID) Snapshot {
	contents, err := s.Read(id)
	if err != nil {
		logger.Debug().Err(err).Str("source", string(id)).Msg("Source not readable")
		return Snapshot{Source: id}
	}

	if err := s.Clear(id); err != nil {
		// Best-effort single-clear: keep the contents we already read.
		logger.Error().Err(err).Str("source", string(id)).Msg("Couldn't clear source")
	}

	return Snapshot{Source: id, Contents: contents, Present: true}
}
