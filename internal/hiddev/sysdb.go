package hiddev

// Device is a single read-only record in the system device database.
type Device interface {
	// Syspath is the absolute path of the device in the sysfs tree.
	Syspath() string

	// Sysname is the final component of the syspath, the device's
	// logical name.
	Sysname() string

	// Subsystem is the kernel subsystem the device belongs to.
	Subsystem() string

	// Parent returns the parent record, or nil at the top of the tree.
	Parent() Device

	// PropertyValue returns the named udev property, or "" when unset.
	PropertyValue(key string) string
}

// Database resolves syspaths to device records.
type Database interface {
	// DeviceFromSyspath opens the record at the given syspath. When no
	// record exists the error wraps ErrNoSuchDevice.
	DeviceFromSyspath(syspath string) (Device, error)

	// Devices enumerates all records belonging to a subsystem.
	Devices(subsystem string) ([]Device, error)
}
