package protocol

import "errors"

var (
	// ErrInvalidArgument reports caller input that can never be accepted:
	// bad names, over-long values on capped versions, duplicates.
	ErrInvalidArgument = errors.New("protocol: invalid argument")
	// ErrInvalidState reports an operation on a destroyed component.
	ErrInvalidState = errors.New("protocol: invalid state")
	// ErrUnsupported reports valid input that the running version cannot carry.
	ErrUnsupported = errors.New("protocol: unsupported by version")
	// ErrConstruction reports an unrecoverable startup mismatch. Nothing can
	// be sent once it is returned.
	ErrConstruction = errors.New("protocol: construction failed")
)
