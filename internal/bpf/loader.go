package bpf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cilium/ebpf"
	"github.com/cilium/ebpf/link"
	"github.com/rs/zerolog"

	"github.com/example/hid-bpf-loader/internal/hiddev"
)

// probeProgram is the conventional name of the optional SEC("syscall")
// program a candidate object uses to decide whether it binds to a device.
const probeProgram = "probe"

// probeArgs mirrors struct hid_bpf_probe_args from the kernel headers. A
// non-zero Retval after the run means the program declines the device.
type probeArgs struct {
	HID       uint32
	RdescSize uint32
	Rdesc     [4096]uint8
	Retval    int32
}

// Loader verifies, loads and attaches candidate objects, pinning the
// resulting programs and links so they outlive this process.
type Loader struct {
	pins *Pins
	log  zerolog.Logger
}

// NewLoader returns a loader pinning into the given store.
func NewLoader(pins *Pins, log zerolog.Logger) *Loader {
	return &Loader{pins: pins, log: log}
}

// Load attaches one candidate object to a device. The object's probe, if
// present, is run against the device's report descriptor first; an object
// that declines the device is skipped without error.
func (l *Loader) Load(path string, dev *hiddev.HID) error {
	id, err := dev.ID()
	if err != nil {
		return err
	}

	spec, err := ebpf.LoadCollectionSpec(path)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	// Objects that parametrise on the device pick the id up from a
	// global; older objects receive it through the probe context only.
	if v, ok := spec.Variables["hid_id"]; ok {
		if err := v.Set(id); err != nil {
			return fmt.Errorf("setting hid_id in %s: %w", path, err)
		}
	}

	coll, err := ebpf.NewCollection(spec)
	if err != nil {
		var verr *ebpf.VerifierError
		if errors.As(err, &verr) {
			return fmt.Errorf("verifier rejected %s: %w", path, verr)
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	defer coll.Close()

	if probe, ok := coll.Programs[probeProgram]; ok {
		ok, err := l.runProbe(probe, dev, id)
		if err != nil {
			return fmt.Errorf("probing %s for %s: %w", path, dev.Sysname(), err)
		}
		if !ok {
			l.log.Debug().
				Str("device", dev.Sysname()).
				Str("object", path).
				Msg("probe declined device")
			return nil
		}
	}

	pinDir := l.pins.Dir(dev.Sysname())
	if err := os.MkdirAll(pinDir, 0o755); err != nil {
		return fmt.Errorf("creating pin directory: %w", err)
	}

	objName := strings.TrimSuffix(filepath.Base(path), ".bpf.o")
	for name, prog := range coll.Programs {
		if name == probeProgram || prog.Type() != ebpf.Tracing {
			continue
		}
		if err := l.attach(prog, filepath.Join(pinDir, objName+"_"+name)); err != nil {
			return fmt.Errorf("attaching %s from %s: %w", name, path, err)
		}
		l.log.Debug().
			Str("device", dev.Sysname()).
			Str("object", path).
			Str("program", name).
			Msg("attached program")
	}
	return nil
}

// runProbe executes the object's probe against the device's report
// descriptor and reports whether the object wants the device.
func (l *Loader) runProbe(probe *ebpf.Program, dev *hiddev.HID, id uint32) (bool, error) {
	rdesc, err := os.ReadFile(filepath.Join(dev.Syspath(), "report_descriptor"))
	if err != nil {
		return false, fmt.Errorf("reading report descriptor: %w", err)
	}
	args := probeArgs{HID: id, RdescSize: uint32(len(rdesc))}
	if len(rdesc) > len(args.Rdesc) {
		return false, fmt.Errorf("report descriptor too large: %d bytes", len(rdesc))
	}
	copy(args.Rdesc[:], rdesc)

	var out probeArgs
	if _, err := probe.Run(&ebpf.RunOptions{Context: args, ContextOut: &out}); err != nil {
		return false, err
	}
	return out.Retval == 0, nil
}

// attach creates the tracing link for one program and pins both the link
// and the program under the device's pin directory. The link keeps the
// attachment alive; the program pin makes it discoverable for listing.
func (l *Loader) attach(prog *ebpf.Program, pinPath string) error {
	lnk, err := link.AttachTracing(link.TracingOptions{Program: prog})
	if err != nil {
		return err
	}
	if err := lnk.Pin(pinPath + ".link"); err != nil {
		lnk.Close()
		return fmt.Errorf("pinning link: %w", err)
	}
	if err := prog.Pin(pinPath); err != nil {
		lnk.Unpin()
		lnk.Close()
		return fmt.Errorf("pinning program: %w", err)
	}
	return lnk.Close()
}
