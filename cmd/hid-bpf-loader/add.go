package main

import (
	"github.com/spf13/cobra"
)

func newAddCmd(a *app) *cobra.Command {
	var bpfdir string

	cmd := &cobra.Command{
		Use:   "add DEVPATH [PROG]",
		Short: "Handle a newly created device",
		Long: `Resolve the HID device at DEVPATH (e.g.
/sys/bus/hid/devices/0003:045E:07A5.000B), match it against the available
BPF objects and load every applicable one. With PROG, load exactly that
object instead of matching.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog := ""
			if len(args) == 2 {
				prog = args[1]
			}
			dir := bpfdir
			if dir == "" {
				dir = a.cfg.ProgramDir()
			}
			return a.engine().Add(args[0], prog, dir)
		},
	}

	cmd.Flags().StringVarP(&bpfdir, "bpfdir", "b", "", "directory to look in for BPF objects")
	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove DEVPATH",
		Short: "Handle a device removed from sysfs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.engine().Remove(args[0])
		},
	}
}
