// Package hiddev resolves sysfs paths to HID devices and derives their
// identity. The path handed to a hotplug event may reference a sub-device
// (a hidraw node, an input node); resolution walks up the device tree to
// the owning hid record.
package hiddev

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/example/hid-bpf-loader/internal/modalias"
)

// Subsystem is the device class this tool operates on.
const Subsystem = "hid"

// sysnamePattern is the fixed layout of a hid sysname:
// bus:vendor:product.instance, e.g. "0003:045E:07A5.000B".
var sysnamePattern = regexp.MustCompile(`^[0-9A-Fa-f]{4}:[0-9A-Fa-f]{4}:[0-9A-Fa-f]{4}\.[0-9A-Fa-f]{4}$`)

// HID wraps the device-database record of one hid device for the duration
// of a single invocation. It is never persisted; every invocation
// re-resolves from the syspath.
type HID struct {
	dev Device
}

// FromSyspath opens the record at syspath and resolves it to a hid device,
// walking ancestors when the path names a more specific sub-device.
func FromSyspath(db Database, syspath string) (*HID, error) {
	dev, err := db.DeviceFromSyspath(syspath)
	if err != nil {
		return nil, err
	}
	if dev.Subsystem() == Subsystem {
		return &HID{dev: dev}, nil
	}
	for p := dev.Parent(); p != nil; p = p.Parent() {
		if p.Subsystem() == Subsystem {
			return &HID{dev: p}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotHIDDevice, syspath)
}

// Syspath returns the resolved device's sysfs path, which may be an
// ancestor of the path the device was resolved from.
func (h *HID) Syspath() string { return h.dev.Syspath() }

// Sysname returns the device's logical name, the key for all per-device
// persisted state.
func (h *HID) Sysname() string { return h.dev.Sysname() }

// Modalias reads and decodes the device's identity encoding. A device
// without a MODALIAS property is an error: a hid record always carries
// one, so absence means the database entry is unusable.
func (h *HID) Modalias() (modalias.Modalias, error) {
	raw := h.dev.PropertyValue("MODALIAS")
	if raw == "" {
		return modalias.Modalias{}, fmt.Errorf("%w: %s", ErrMissingModalias, h.Syspath())
	}
	m, err := modalias.Parse(raw)
	if err != nil {
		return modalias.Modalias{}, fmt.Errorf("device %s: %w", h.Syspath(), err)
	}
	return m, nil
}

// ID returns the device's instance number, the trailing hex segment of the
// sysname.
func (h *HID) ID() (uint32, error) {
	name := h.Sysname()
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 || dot == len(name)-1 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedSysname, name)
	}
	id, err := strconv.ParseUint(name[dot+1:], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedSysname, name)
	}
	return uint32(id), nil
}

// SysnameFromSyspath recovers a hid sysname from a raw path without a live
// device record, for removal events that arrive after the record is gone.
// Any symlink is resolved first; the final path segment must match the
// sysname layout exactly.
func SysnameFromSyspath(syspath string) (string, error) {
	path := syspath
	if resolved, err := os.Readlink(syspath); err == nil {
		path = resolved
	}
	name := filepath.Base(path)
	if !sysnamePattern.MatchString(name) {
		return "", fmt.Errorf("%w: %s", ErrInvalidSyspath, syspath)
	}
	return name, nil
}
