// hid-bpf-loader dispatches HID-BPF fixup programs to HID devices. It is
// invoked once per hotplug event (typically from a udev rule): "add"
// matches the device identity against a directory of BPF objects and
// loads what applies, "remove" tears the device's pinned state down
// again. The listing subcommands are reporting helpers.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/example/hid-bpf-loader/internal/bpf"
	"github.com/example/hid-bpf-loader/internal/config"
	"github.com/example/hid-bpf-loader/internal/engine"
	"github.com/example/hid-bpf-loader/internal/hiddev"
	"github.com/example/hid-bpf-loader/internal/logging"
)

// Version is set at build time via ldflags.
var Version = "dev"

type app struct {
	cfg *config.Config
	log zerolog.Logger
	db  hiddev.Database
}

func newRootCmd() *cobra.Command {
	a := &app{}

	var (
		configPath string
		verbose    bool
		debug      bool
	)

	cmd := &cobra.Command{
		Use:           "hid-bpf-loader",
		Short:         "Load and unload HID-BPF programs on device hotplug events",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			required := path != ""
			if path == "" {
				path = config.DefaultPath
			}
			cfg, err := config.Load(path, required)
			if err != nil {
				return err
			}

			logCfg := cfg.Logging
			if verbose || debug {
				logCfg.Debug = true
			}
			log, err := logging.New(logCfg)
			if err != nil {
				return err
			}

			a.cfg = cfg
			a.log = log
			a.db = hiddev.NewUdevDatabase()
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "configuration file (default "+config.DefaultPath+")")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "print debugging information")

	cmd.AddCommand(
		newAddCmd(a),
		newRemoveCmd(a),
		newListProgramsCmd(a),
		newListDevicesCmd(a),
	)
	return cmd
}

// engine wires the production collaborators for one invocation.
func (a *app) engine() *engine.Engine {
	pins := bpf.NewPins()
	loader := bpf.NewLoader(pins, a.log)
	return engine.New(a.db, loader, pins, a.log)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
