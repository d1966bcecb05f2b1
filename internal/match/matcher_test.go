package match

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/hid-bpf-loader/internal/modalias"
)

var testID = modalias.Modalias{Bus: 0x0003, Group: 0x0001, VendorID: 0x04D9, ProductID: 0xA09F}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}
}

// Every per-field combination of exact value and wildcard applies to the
// device; nothing else does.
func TestCandidatesFieldAlternation(t *testing.T) {
	dir := t.TempDir()

	fields := [4][2]string{
		{"b0003", "b*"},
		{"g0001", "g*"},
		{"v000004D9", "v*"},
		{"p0000A09F", "p*"},
	}
	var applicable []string
	for mask := 0; mask < 16; mask++ {
		name := ""
		for i := range fields {
			name += fields[i][(mask>>i)&1]
		}
		name += fmt.Sprintf("-combo%02d%s", mask, Suffix)
		applicable = append(applicable, name)
	}
	writeFiles(t, dir, applicable...)

	// Wrong value in exactly one field, wildcards elsewhere.
	writeFiles(t, dir,
		"b0005g*v*p*-otherbus.bpf.o",
		"b*g0002v*p*-othergroup.bpf.o",
		"b*g*v000004DAp*-othervendor.bpf.o",
		"b*g*v*p0000A0A0-otherproduct.bpf.o",
		"b0003g0001v04D9pA09F-narrowfields.bpf.o",
	)

	got, err := Candidates(dir, testID, "")
	require.NoError(t, err)

	var want []string
	for _, name := range applicable {
		want = append(want, filepath.Join(dir, name))
	}
	sort.Strings(want)
	assert.Equal(t, want, got)
}

func TestCandidatesCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "B0003G0001V000004d9P0000a09f-mixed.BPF.O")

	got, err := Candidates(dir, testID, "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, filepath.Join(dir, "B0003G0001V000004d9P0000a09f-mixed.BPF.O"), got[0])
}

func TestCandidatesIgnoresNonPrograms(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir,
		"b0003g0001v*p*-wrong-suffix.bpf.c",
		"b0003g0001v*p*-no-suffix",
		"README",
	)
	// A directory whose name would otherwise match.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "b*g*v*p*-subdir.bpf.o"), 0o755))

	got, err := Candidates(dir, testID, "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCandidatesMissingDirectory(t *testing.T) {
	got, err := Candidates(filepath.Join(t.TempDir(), "nonexistent"), testID, "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCandidatesDeterministicOrder(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"b*g*v*p*-zz.bpf.o",
		"b*g*v*p*-aa.bpf.o",
		"b0003g0001v*p*-mm.bpf.o",
	}
	writeFiles(t, dir, names...)

	got, err := Candidates(dir, testID, "")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "b*g*v*p*-aa.bpf.o"),
		filepath.Join(dir, "b*g*v*p*-zz.bpf.o"),
		filepath.Join(dir, "b0003g0001v*p*-mm.bpf.o"),
	}, got)
}

func TestPrograms(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir,
		"b*g*v*p*-zz.bpf.o",
		"b0005g0001v*p*-aa.bpf.o",
		"notes.txt",
	)

	names, err := Programs(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"b*g*v*p*-zz.bpf.o", "b0005g0001v*p*-aa.bpf.o"}, names)

	names, err = Programs(filepath.Join(dir, "nonexistent"))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestCandidatesExactNameBypassesMatching(t *testing.T) {
	// The named file does not match the identity and does not even
	// exist; selection happens anyway and the loader surfaces failures.
	got, err := Candidates("/some/dir", testID, "b9999g9999v*p*-forced.bpf.o")
	require.NoError(t, err)
	assert.Equal(t, []string{"/some/dir/b9999g9999v*p*-forced.bpf.o"}, got)
}
