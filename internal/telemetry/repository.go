package telemetry

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/The-PhoenixOS/hardware-google-pixel/internal/errors"
	"github.com/The-PhoenixOS/hardware-google-pixel/internal/logger"

	_ "github.com/mattn/go-sqlite3"
)

const (
	chargeStatsWidth      = 17
	voltageTierStatsWidth = 20
)

type sqliteReporter struct {
	db *sql.DB
	mu sync.Mutex
}

// NewReporter opens (and if needed initializes) the sqlite-backed sink.
func NewReporter(cfg Config) (Reporter, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	logger.Debug().Str("db_path", cfg.DBPath).Msg("Initializing telemetry reporter")

	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	dsn := cfg.DBPath + "?_journal=WAL&_auto_vacuum=2"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	if err := validateSchema(db); err != nil {
		db.Close()
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	return &sqliteReporter{db: db}, nil
}

func (r *sqliteReporter) Report(ctx context.Context, record *Record) error {
	errFactory := errors.New()

	if record == nil {
		return errFactory.New(ErrInvalidRecord)
	}

	var (
		insertSQL string
		width     int
	)
	switch record.Atom {
	case AtomChargeStats:
		insertSQL, width = insertChargeStatsSQL, chargeStatsWidth
	case AtomVoltageTierStats:
		insertSQL, width = insertVoltageTierStatsSQL, voltageTierStatsWidth
	default:
		return errFactory.WithData(ErrUnknownAtom, int32(record.Atom))
	}

	if len(record.Values) != width {
		return errFactory.WithData(ErrInvalidRecord, struct {
			Atom     AtomID
			Got      int
			Expected int
		}{
			Atom:     record.Atom,
			Got:      len(record.Values),
			Expected: width,
		})
	}

	args := make([]any, 0, width+1)
	args = append(args, time.Now().Unix())
	for _, v := range record.Values {
		if v.Kind == FloatKind {
			args = append(args, float64(v.Float))
		} else {
			args = append(args, int64(v.Int))
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	select {
	case <-ctx.Done():
		return errFactory.Wrap(ErrOperationTimeout, ctx.Err())
	default:
	}

	if _, err := r.db.ExecContext(ctx, insertSQL, args...); err != nil {
		return errFactory.Wrap(ErrReportFailed, err)
	}

	return nil
}

func (r *sqliteReporter) Close() error {
	errFactory := errors.New()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		logger.Debug().Err(err).Msg("WAL checkpoint failed on close")
	}

	if err := r.db.Close(); err != nil {
		return errFactory.Wrap(ErrStorageClose, err)
	}

	return nil
}
