package fs

import (
	"testing"

	"github.com/segmentio/stats/v5"
	"github.com/segmentio/stats/v5/statstest"

	"github.com/jnwhiteh/readcount/log"
	. "github.com/jnwhiteh/readcount/testutils"
)

func OpenMemImage(test *testing.T, files map[string]string, opts ...Option) (*FileSystem, *Process) {
	opts = append([]Option{WithLogger(log.Nop())}, opts...)
	fs, proc, err := NewFileSystem(NewMemFS(test, files), opts...)
	if err != nil {
		FatalHere(test, "Failed opening file system: %s", err)
	}
	return fs, proc
}

func OpenMemImageWithStats(test *testing.T, files map[string]string) (*FileSystem, *Process, *statstest.Handler) {
	h := &statstest.Handler{}
	fs, proc := OpenMemImage(test, files, WithStats(stats.NewEngine("readcount", h)))
	return fs, proc, h
}

// Counts the measures carrying a field with the given name.
func countField(h *statstest.Handler, field string) int {
	n := 0
	for _, m := range h.Measures() {
		for _, f := range m.Fields {
			if f.Name == field {
				n++
			}
		}
	}
	return n
}

func TestCleanPath(test *testing.T) {
	cases := map[string]string{
		"":            "",
		"README":      "README",
		"/README":     "README",
		"./a/../b":    "b",
		"/../../etc":  "etc",
		"dir/file.go": "dir/file.go",
	}
	for in, want := range cases {
		if got := cleanPath(in); got != want {
			ErrorHere(test, "cleanPath(%q): expected %q, got %q", in, want, got)
		}
	}
}
