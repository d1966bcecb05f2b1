// Package match selects the candidate BPF objects that apply to a device
// identity. Program files declare their target identity in the filename,
// one alternative per field: the field's exact fixed-width hex value or a
// literal "*" wildcard, e.g. "b0003g0001v*p*-mouse-fixup.bpf.o".
package match

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"github.com/example/hid-bpf-loader/internal/modalias"
)

// Suffix is the file extension a candidate program must carry.
const Suffix = ".bpf.o"

// Candidates returns the paths of all files in dir applicable to the given
// identity, sorted lexicographically. A missing directory yields an empty
// result: a device with no program directory installed is a normal state.
//
// When exactName is non-empty the matching step is bypassed and exactly
// that file in dir is selected; its existence is left for the loader to
// check.
func Candidates(dir string, id modalias.Modalias, exactName string) ([]string, error) {
	if exactName != "" {
		return []string{filepath.Join(dir, exactName)}, nil
	}

	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading program directory %s: %w", dir, err)
	}

	matcher, err := compile(id)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, entry := range entries {
		name := strings.ToLower(entry.Name())
		if !strings.HasSuffix(name, Suffix) || !matcher.Match(name) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		out = append(out, path)
	}
	sort.Strings(out)
	return out, nil
}

// Programs lists the names of all eligible program files in dir, sorted,
// without matching them against any identity.
func Programs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading program directory %s: %w", dir, err)
	}

	var out []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), Suffix) {
			continue
		}
		out = append(out, entry.Name())
	}
	sort.Strings(out)
	return out, nil
}

// compile builds the per-field alternation for an identity. Matching is
// done against lowercased names because the glob library has no
// case-insensitive mode; the encoding is pure hex, so folding is lossless.
// "/" is declared as a separator so a wildcard can never span path
// components.
func compile(id modalias.Modalias) (glob.Glob, error) {
	pattern := fmt.Sprintf(`b{%04x,\*}g{%04x,\*}v{%08x,\*}p{%08x,\*}*%s`,
		id.Bus, id.Group, id.VendorID, id.ProductID, Suffix)
	matcher, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, fmt.Errorf("compiling candidate pattern for %s: %w", id, err)
	}
	return matcher, nil
}
