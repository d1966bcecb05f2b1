// Package bpf loads candidate objects into the kernel and manages the
// per-device bpffs subtree that keeps them alive between invocations.
package bpf

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultPinRoot is where per-device program pins live on bpffs.
const DefaultPinRoot = "/sys/fs/bpf/hid"

// Pins is the per-device pin store. All state this tool persists lives
// under Root, one subdirectory per device sysname.
type Pins struct {
	Root string
}

// NewPins returns a pin store rooted at the default bpffs location.
func NewPins() *Pins {
	return &Pins{Root: DefaultPinRoot}
}

// Dir returns the pin directory for a device.
func (p *Pins) Dir(sysname string) string {
	return filepath.Join(p.Root, sysname)
}

// Purge removes everything pinned for a device. Removal is idempotent: a
// device that never had programs loaded purges to a no-op.
func (p *Pins) Purge(sysname string) error {
	dir := p.Dir(sysname)
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("purging %s: %w", dir, err)
	}
	return nil
}
