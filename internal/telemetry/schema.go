package telemetry

import (
	"database/sql"

	"github.com/The-PhoenixOS/hardware-google-pixel/internal/errors"
	"github.com/The-PhoenixOS/hardware-google-pixel/internal/logger"
)

const (
	SchemaVersion = 1

	createTablesSQL = `
	   CREATE TABLE IF NOT EXISTS schema_versions (
	       version     INTEGER PRIMARY KEY,
	       applied_at  TEXT NOT NULL
	   );
	   CREATE TABLE IF NOT EXISTS charge_stats (
	       created_at            INTEGER NOT NULL,
	       adapter_type          INTEGER NOT NULL,
	       adapter_voltage       INTEGER NOT NULL,
	       adapter_amperage      INTEGER NOT NULL,
	       ssoc_in               INTEGER NOT NULL,
	       voltage_in            INTEGER NOT NULL,
	       ssoc_out              INTEGER NOT NULL,
	       voltage_out           INTEGER NOT NULL,
	       charge_capacity       INTEGER NOT NULL,
	       csi_aggregate_status  INTEGER NOT NULL,
	       csi_aggregate_type    INTEGER NOT NULL,
	       adapter_capabilities0 INTEGER NOT NULL,
	       adapter_capabilities1 INTEGER NOT NULL,
	       adapter_capabilities2 INTEGER NOT NULL,
	       adapter_capabilities3 INTEGER NOT NULL,
	       adapter_capabilities4 INTEGER NOT NULL,
	       receiver_state0       INTEGER NOT NULL,
	       receiver_state1       INTEGER NOT NULL
	   );
	   CREATE TABLE IF NOT EXISTS voltage_tier_stats (
	       created_at                 INTEGER NOT NULL,
	       voltage_tier               INTEGER NOT NULL,
	       soc_in                     REAL NOT NULL,
	       cc_in                      INTEGER NOT NULL,
	       temp_in                    INTEGER NOT NULL,
	       time_fast_secs             INTEGER NOT NULL,
	       time_taper_secs            INTEGER NOT NULL,
	       time_other_secs            INTEGER NOT NULL,
	       temp_min                   INTEGER NOT NULL,
	       temp_avg                   INTEGER NOT NULL,
	       temp_max                   INTEGER NOT NULL,
	       ibatt_min                  INTEGER NOT NULL,
	       ibatt_avg                  INTEGER NOT NULL,
	       ibatt_max                  INTEGER NOT NULL,
	       icl_min                    INTEGER NOT NULL,
	       icl_avg                    INTEGER NOT NULL,
	       icl_max                    INTEGER NOT NULL,
	       min_adapter_power_out      INTEGER NOT NULL,
	       time_avg_adapter_power_out INTEGER NOT NULL,
	       max_adapter_power_out      INTEGER NOT NULL,
	       charging_operating_point   INTEGER NOT NULL
	   );`

	insertChargeStatsSQL = `
    INSERT INTO charge_stats (
        created_at,
        adapter_type, adapter_voltage, adapter_amperage,
        ssoc_in, voltage_in, ssoc_out, voltage_out,
        charge_capacity, csi_aggregate_status, csi_aggregate_type,
        adapter_capabilities0, adapter_capabilities1, adapter_capabilities2,
        adapter_capabilities3, adapter_capabilities4,
        receiver_state0, receiver_state1
    ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	insertVoltageTierStatsSQL = `
    INSERT INTO voltage_tier_stats (
        created_at,
        voltage_tier, soc_in, cc_in, temp_in,
        time_fast_secs, time_taper_secs, time_other_secs,
        temp_min, temp_avg, temp_max,
        ibatt_min, ibatt_avg, ibatt_max,
        icl_min, icl_avg, icl_max,
        min_adapter_power_out, time_avg_adapter_power_out, max_adapter_power_out,
        charging_operating_point
    ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
)

// InitSchema creates the database schema with the current version
func InitSchema(db *sql.DB) error {
	errFactory := errors.New()

	tx, err := db.Begin()
	if err != nil {
		return errFactory.Wrap(ErrSchemaInitFailed, err)
	}

	committed := false
	defer func() {
		if !committed {
			if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
				logger.Debug().Err(err).Msg("Failed to rollback transaction")
			}
		}
	}()

	if _, err := tx.Exec(createTablesSQL); err != nil {
		return errFactory.WithData(ErrSchemaInitFailed, struct {
			Error string
			SQL   string
		}{
			Error: err.Error(),
			SQL:   createTablesSQL,
		})
	}

	if _, err := tx.Exec(`
        INSERT INTO schema_versions (version, applied_at)
        VALUES (?, datetime('now'))
    `, SchemaVersion); err != nil {
		return errFactory.WithData(ErrSchemaInitFailed, struct {
			Error string
			Phase string
		}{
			Error: err.Error(),
			Phase: "record_version",
		})
	}

	if err := tx.Commit(); err != nil {
		return errFactory.Wrap(ErrSchemaInitFailed, err)
	}
	committed = true

	logger.Info().
		Int("version", SchemaVersion).
		Msg("Telemetry schema initialized")

	return nil
}

// GetSchemaVersion returns the current schema version
func GetSchemaVersion(db *sql.DB) (int, error) {
	errFactory := errors.New()

	exists, err := TableExists(db, "schema_versions")
	if err != nil {
		return 0, errFactory.Wrap(ErrSchemaValidationFailed, err)
	}
	if !exists {
		return 0, nil
	}

	var version int
	err = db.QueryRow(`
        SELECT version
        FROM schema_versions
        ORDER BY version DESC
        LIMIT 1
    `).Scan(&version)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, errFactory.WithData(ErrSchemaValidationFailed, struct {
			Phase string
			Error string
		}{
			Phase: "get_version",
			Error: err.Error(),
		})
	}

	return version, nil
}

// TableExists checks if a table exists
func TableExists(db *sql.DB, tableName string) (bool, error) {
	errFactory := errors.New()
	var exists bool
	err := db.QueryRow(`
        SELECT EXISTS (
            SELECT 1 FROM sqlite_master
            WHERE type='table' AND name=?
        )
    `, tableName).Scan(&exists)
	if err != nil {
		return false, errFactory.WithData(ErrSchemaValidationFailed, struct {
			Phase string
			Table string
			Error string
		}{
			Phase: "check_table_exists",
			Table: tableName,
			Error: err.Error(),
		})
	}
	return exists, nil
}

// validateSchema initializes a fresh database and rejects one whose
// version this build does not understand.
func validateSchema(db *sql.DB) error {
	errFactory := errors.New()

	version, err := GetSchemaVersion(db)
	if err != nil {
		return err
	}

	switch version {
	case 0:
		return InitSchema(db)
	case SchemaVersion:
		return nil
	default:
		return errFactory.WithData(ErrSchemaValidationFailed, struct {
			Found    int
			Expected int
		}{
			Found:    version,
			Expected: SchemaVersion,
		})
	}
}
