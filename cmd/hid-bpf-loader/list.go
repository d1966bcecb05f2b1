package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/example/hid-bpf-loader/internal/hiddev"
	"github.com/example/hid-bpf-loader/internal/match"
	"github.com/example/hid-bpf-loader/internal/modalias"
)

func newListProgramsCmd(a *app) *cobra.Command {
	var bpfdir string

	cmd := &cobra.Command{
		Use:   "list-programs",
		Short: "List the available BPF objects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := bpfdir
			if dir == "" {
				dir = a.cfg.ProgramDir()
			}
			names, err := match.Programs(dir)
			if err != nil {
				return err
			}
			fmt.Printf("Showing available BPF files in %s:\n", dir)
			for _, name := range names {
				fmt.Printf(" %s\n", name)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&bpfdir, "bpfdir", "b", "", "directory to look in for BPF objects")
	return cmd
}

func newListDevicesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list-devices",
		Short: "List the HID devices on this system",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			devices, err := a.db.Devices(hiddev.Subsystem)
			if err != nil {
				return err
			}
			sort.Slice(devices, func(i, j int) bool {
				return devices[i].Syspath() < devices[j].Syspath()
			})
			for _, dev := range devices {
				id, err := modalias.Parse(dev.PropertyValue("MODALIAS"))
				if err != nil {
					continue
				}
				fmt.Println(dev.Syspath())
				fmt.Printf("  - name: %s\n", dev.PropertyValue("HID_NAME"))
				fmt.Printf("  - device entry: HID_DEVICE(%s, %s, 0x%04X, 0x%04X)\n",
					busName(id.Bus), groupName(id.Group), id.VendorID, id.ProductID)
				fmt.Println()
			}
			return nil
		},
	}
}

// busName returns the kernel constant name for a HID bus type, or the raw
// hex value when unknown.
func busName(bus uint32) string {
	names := map[uint32]string{
		0x0001: "BUS_PCI",
		0x0002: "BUS_ISAPNP",
		0x0003: "BUS_USB",
		0x0004: "BUS_HIL",
		0x0005: "BUS_BLUETOOTH",
		0x0006: "BUS_VIRTUAL",
		0x0010: "BUS_ISA",
		0x0011: "BUS_I8042",
		0x0012: "BUS_XTKBD",
		0x0013: "BUS_RS232",
		0x0014: "BUS_GAMEPORT",
		0x0015: "BUS_PARPORT",
		0x0016: "BUS_AMIGA",
		0x0017: "BUS_ADB",
		0x0018: "BUS_I2C",
		0x0019: "BUS_HOST",
		0x001A: "BUS_GSC",
		0x001B: "BUS_ATARI",
		0x001C: "BUS_SPI",
		0x001D: "BUS_RMI",
		0x001E: "BUS_CEC",
		0x001F: "BUS_INTEL_ISHTP",
		0x0020: "BUS_AMD_SFH",
	}
	if name, ok := names[bus]; ok {
		return name
	}
	return fmt.Sprintf("%04X", bus)
}

// groupName returns the kernel constant name for a HID group.
func groupName(group uint32) string {
	names := map[uint32]string{
		0x0001: "HID_GROUP_GENERIC",
		0x0002: "HID_GROUP_MULTITOUCH",
		0x0003: "HID_GROUP_SENSOR_HUB",
		0x0004: "HID_GROUP_MULTITOUCH_WIN_8",
		0x0100: "HID_GROUP_RMI",
		0x0101: "HID_GROUP_WACOM",
		0x0102: "HID_GROUP_LOGITECH_DJ_DEVICE",
		0x0103: "HID_GROUP_STEAM",
		0x0104: "HID_GROUP_LOGITECH_27MHZ_DEVICE",
		0x0105: "HID_GROUP_VIVALDI",
	}
	if name, ok := names[group]; ok {
		return name
	}
	return fmt.Sprintf("%04X", group)
}
