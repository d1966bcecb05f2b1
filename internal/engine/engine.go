// Package engine drives the add and remove flows for one hotplug event.
// Each flow is a stateless, single-pass sequence: resolve the device,
// decide what applies, hand off to the loader or pin store. Nothing is
// kept between invocations; persistence lives entirely in the pin store.
package engine

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/example/hid-bpf-loader/internal/hiddev"
	"github.com/example/hid-bpf-loader/internal/match"
)

// Loader attaches one candidate object to a device.
type Loader interface {
	Load(path string, dev *hiddev.HID) error
}

// PinStore deletes the persisted state for a device name.
type PinStore interface {
	Purge(sysname string) error
}

// Engine orchestrates one invocation.
type Engine struct {
	db     hiddev.Database
	loader Loader
	pins   PinStore
	log    zerolog.Logger
}

// New wires an engine from its collaborators.
func New(db hiddev.Database, loader Loader, pins PinStore, log zerolog.Logger) *Engine {
	return &Engine{db: db, loader: loader, pins: pins, log: log}
}

// Add resolves the device at syspath, matches candidates in dir and loads
// each of them. Every candidate is attempted; per-candidate failures are
// collected and reported together, so one broken object does not block the
// rest. A device with no applicable programs is a normal, successful
// outcome.
//
// A non-empty prog narrows the invocation to that single file in dir.
func (e *Engine) Add(syspath, prog, dir string) error {
	dev, err := hiddev.FromSyspath(e.db, syspath)
	if err != nil {
		return err
	}

	id, err := dev.Modalias()
	if err != nil {
		return err
	}

	candidates, err := match.Candidates(dir, id, prog)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		e.log.Debug().
			Str("device", dev.Sysname()).
			Str("modalias", id.String()).
			Str("dir", dir).
			Msg("no applicable programs")
		return nil
	}

	var errs []error
	for _, candidate := range candidates {
		e.log.Info().
			Str("device", dev.Sysname()).
			Str("object", candidate).
			Msg("loading program")
		if err := e.loader.Load(candidate, dev); err != nil {
			errs = append(errs, fmt.Errorf("loading %s: %w", candidate, err))
		}
	}
	return errors.Join(errs...)
}

// Remove purges the pinned state of the device at syspath. By the time a
// removal event is handled the database record is usually gone already, so
// resolution falls back to extracting the sysname from the path itself.
func (e *Engine) Remove(syspath string) error {
	sysname, err := e.sysname(syspath)
	if err != nil {
		return err
	}
	e.log.Info().Str("device", sysname).Msg("device removed")
	return e.pins.Purge(sysname)
}

func (e *Engine) sysname(syspath string) (string, error) {
	dev, err := hiddev.FromSyspath(e.db, syspath)
	if err == nil {
		return dev.Sysname(), nil
	}
	if errors.Is(err, hiddev.ErrNoSuchDevice) {
		return hiddev.SysnameFromSyspath(syspath)
	}
	return "", err
}
