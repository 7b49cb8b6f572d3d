package testutils

import (
	"fmt"
	"os"
	"runtime"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
)

// The contents of the README placed on every in-memory test filesystem.
const ReadmeContents = "readcount: a read counter regression test\n"

func ErrorHere(test *testing.T, str string, args ...interface{}) {
	_, file, line, _ := runtime.Caller(1)
	info := fmt.Sprintf("[%s:%d] ", file, line)
	test.Errorf(info+str, args...)
}

func FatalHere(test *testing.T, str string, args ...interface{}) {
	_, file, line, _ := runtime.Caller(1)
	info := fmt.Sprintf("[%s:%d] ", file, line)
	test.Fatalf(info+str, args...)
}

// NewMemFS returns an in-memory filesystem holding a README and whatever
// extra files are given, keyed by path.
func NewMemFS(test *testing.T, files map[string]string) billy.Filesystem {
	root := memfs.New()
	if err := util.WriteFile(root, "README", []byte(ReadmeContents), 0644); err != nil {
		FatalHere(test, "Failed writing README: %s", err)
	}
	for name, contents := range files {
		if err := util.WriteFile(root, name, []byte(contents), 0644); err != nil {
			FatalHere(test, "Failed writing %s: %s", name, err)
		}
	}
	return root
}

// RemoveFile deletes a file from a test filesystem.
func RemoveFile(test *testing.T, root billy.Filesystem, name string) {
	if err := root.Remove(name); err != nil && !os.IsNotExist(err) {
		FatalHere(test, "Failed removing %s: %s", name, err)
	}
}
