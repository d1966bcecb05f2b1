package hiddev

import (
	"fmt"

	"github.com/jochenvg/go-udev"
)

// UdevDatabase is the production Database, backed by libudev.
type UdevDatabase struct {
	udev udev.Udev
}

// NewUdevDatabase returns a Database reading the running system's udev
// records.
func NewUdevDatabase() *UdevDatabase {
	return &UdevDatabase{}
}

func (db *UdevDatabase) DeviceFromSyspath(syspath string) (Device, error) {
	dev, err := db.udev.NewDeviceFromSyspath(syspath)
	if err != nil {
		// libudev does not distinguish failure modes here; a record
		// that cannot be opened is treated as absent.
		return nil, fmt.Errorf("%w: %s: %v", ErrNoSuchDevice, syspath, err)
	}
	return udevDevice{dev: dev}, nil
}

func (db *UdevDatabase) Devices(subsystem string) ([]Device, error) {
	enum := db.udev.NewEnumerate()
	if err := enum.AddMatchSubsystem(subsystem); err != nil {
		return nil, fmt.Errorf("enumerating %s devices: %w", subsystem, err)
	}
	devs, err := enum.Devices()
	if err != nil {
		return nil, fmt.Errorf("enumerating %s devices: %w", subsystem, err)
	}
	out := make([]Device, 0, len(devs))
	for _, d := range devs {
		out = append(out, udevDevice{dev: d})
	}
	return out, nil
}

type udevDevice struct {
	dev *udev.Device
}

func (d udevDevice) Syspath() string   { return d.dev.Syspath() }
func (d udevDevice) Sysname() string   { return d.dev.Sysname() }
func (d udevDevice) Subsystem() string { return d.dev.Subsystem() }

func (d udevDevice) Parent() Device {
	p := d.dev.Parent()
	if p == nil {
		return nil
	}
	return udevDevice{dev: p}
}

func (d udevDevice) PropertyValue(key string) string {
	return d.dev.PropertyValue(key)
}
