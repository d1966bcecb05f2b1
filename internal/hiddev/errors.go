package hiddev

import "errors"

// Domain errors for device resolution. Callers distinguish them with
// errors.Is; all are wrapped with the offending path or name.
var (
	// ErrNoSuchDevice is returned when a syspath does not resolve to any
	// record in the device database.
	ErrNoSuchDevice = errors.New("hiddev: no such device")

	// ErrNotHIDDevice is returned when neither the device nor any of its
	// ancestors belongs to the hid subsystem.
	ErrNotHIDDevice = errors.New("hiddev: not a hid device")

	// ErrMissingModalias is returned when a resolved device carries no
	// MODALIAS property.
	ErrMissingModalias = errors.New("hiddev: modalias property missing")

	// ErrMalformedSysname is returned when a sysname does not end in a
	// parseable hex instance number.
	ErrMalformedSysname = errors.New("hiddev: malformed sysname")

	// ErrInvalidSyspath is returned by the fallback name extraction when
	// the path's final segment is not a valid hid sysname.
	ErrInvalidSyspath = errors.New("hiddev: no hid sysname in path")
)
