// Package modalias parses the kernel's HID modalias encoding, the
// fixed-width string that identifies a HID device by bus, group, vendor
// and product (e.g. "hid:b0003g0001v000004D9p0000A09F").
package modalias

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Prefix is the literal subsystem tag the kernel prepends to the encoding.
const Prefix = "hid:"

// encodedLen is the exact length of the encoding once the prefix is stripped:
// four single-letter field markers plus 4+4+8+8 hex digits.
const encodedLen = 28

// ErrMalformed is returned when the encoding has the wrong length or a
// field is not valid hexadecimal.
var ErrMalformed = errors.New("modalias: malformed")

// Modalias is the decoded device identity. All four fields are present in
// every value; Parse never produces a partially filled record.
type Modalias struct {
	Bus       uint32
	Group     uint32
	VendorID  uint32
	ProductID uint32
}

// Parse decodes a modalias string, with or without the "hid:" prefix.
// Hex digits are accepted in either case.
func Parse(raw string) (Modalias, error) {
	enc := strings.TrimPrefix(raw, Prefix)
	if len(enc) != encodedLen {
		return Modalias{}, fmt.Errorf("%w: %q", ErrMalformed, raw)
	}

	// The field markers at offsets 0, 5, 10 and 19 are structural; only
	// the hex ranges between them are validated.
	bus, err := field(raw, enc, 1, 5)
	if err != nil {
		return Modalias{}, err
	}
	group, err := field(raw, enc, 6, 10)
	if err != nil {
		return Modalias{}, err
	}
	vendor, err := field(raw, enc, 11, 19)
	if err != nil {
		return Modalias{}, err
	}
	product, err := field(raw, enc, 20, 28)
	if err != nil {
		return Modalias{}, err
	}

	return Modalias{
		Bus:       bus,
		Group:     group,
		VendorID:  vendor,
		ProductID: product,
	}, nil
}

func field(raw, enc string, lo, hi int) (uint32, error) {
	v, err := strconv.ParseUint(enc[lo:hi], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, raw)
	}
	return uint32(v), nil
}

// String renders the identity in the canonical uppercase encoding, without
// the subsystem prefix.
func (m Modalias) String() string {
	return fmt.Sprintf("b%04Xg%04Xv%08Xp%08X", m.Bus, m.Group, m.VendorID, m.ProductID)
}
