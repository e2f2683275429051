package domain

import "errors"

var (
	// ErrUnknownKind is returned when a block kind outside the fixed set is
	// requested or decoded.
	ErrUnknownKind = errors.New("unknown block kind")

	// ErrMalformedBlock is returned when a block is structurally invalid.
	ErrMalformedBlock = errors.New("malformed block")

	// ErrStorage marks a failed snapshot read or write.
	ErrStorage = errors.New("storage failure")

	// ErrBackupNotFound is returned when a backup id does not exist.
	ErrBackupNotFound = errors.New("backup not found")
)
