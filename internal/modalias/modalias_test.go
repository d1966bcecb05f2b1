package modalias

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	want := Modalias{Bus: 0x0003, Group: 0x0001, VendorID: 0x04D9, ProductID: 0xA09F}

	m, err := Parse("b0003g0001v000004D9p0000A09F")
	require.NoError(t, err)
	assert.Equal(t, want, m)

	// The subsystem prefix is optional.
	m, err = Parse("hid:b0003g0001v000004D9p0000A09F")
	require.NoError(t, err)
	assert.Equal(t, want, m)

	// Hex case does not matter.
	m, err = Parse(strings.ToLower("b0003g0001v000004D9p0000A09F"))
	require.NoError(t, err)
	assert.Equal(t, want, m)
}

func TestParseRejectsMalformed(t *testing.T) {
	bad := []string{
		"",
		"hid:empty",
		"b0003g0001v000004D9p0000A09F0", // too long
		"b0003g0001v000004D9p0000A09",   // too short
		"b0003g0001v04D9p0000A09F",      // 4-digit vendor shifts all later offsets
		"b0003g0001v000004D9pA09F",      // 4-digit product
		"b0003g0001v0000g4D9p0000A09F",  // non-hex digit inside vendor
		"bzzzzg0001v000004D9p0000A09F",  // non-hex bus
	}
	for _, raw := range bad {
		_, err := Parse(raw)
		assert.ErrorIs(t, err, ErrMalformed, "input %q", raw)
	}
}

func TestString(t *testing.T) {
	m, err := Parse("hid:b0003g0102v0000046Dp0000C52B")
	require.NoError(t, err)
	assert.Equal(t, "b0003g0102v0000046Dp0000C52B", m.String())
}
