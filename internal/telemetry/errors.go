package telemetry

import "github.com/The-PhoenixOS/hardware-google-pixel/internal/errors"

const (
	// Configuration Errors
	ErrInvalidConfig = errors.ErrorCode("telemetry_invalid_config")
	ErrInvalidDBPath = errors.ErrorCode("telemetry_invalid_db_path")

	// Record Errors
	ErrInvalidRecord = errors.ErrorCode("telemetry_invalid_record")
	ErrUnknownAtom   = errors.ErrorCode("telemetry_unknown_atom")
	ErrReportFailed  = errors.ErrorCode("telemetry_report_failed")

	// Schema Errors
	ErrSchemaInitFailed       = errors.ErrorCode("telemetry_schema_init_failed")
	ErrSchemaValidationFailed = errors.ErrorCode("telemetry_schema_validation_failed")

	// Storage Errors
	ErrStorageInit   = errors.ErrorCode("telemetry_storage_init_failed")
	ErrStorageAccess = errors.ErrorCode("telemetry_storage_access_failed")
	ErrStorageClose  = errors.ErrorCode("telemetry_storage_close_failed")

	// Operation Errors
	ErrOperationTimeout = errors.ErrorCode("telemetry_operation_timeout")
)
