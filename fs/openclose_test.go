package fs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnwhiteh/readcount/common"
	. "github.com/jnwhiteh/readcount/testutils"
)

func TestOpenClose(test *testing.T) {
	fs, proc := OpenMemImage(test, nil)

	fd, err := proc.Open("README", common.O_RDONLY, 0)
	if err != nil {
		FatalHere(test, "Failed when opening file: %s", err)
	}
	assert.Equal(test, common.Fd(0), fd)
	assert.Len(test, fs.files, 1)

	err = proc.Close(fd)
	if err != nil {
		FatalHere(test, "Failed when closing file: %s", err)
	}
	assert.Empty(test, fs.files)

	// Intentionally close it again to trigger the error
	err = proc.Close(fd)
	if err != common.EBADF {
		ErrorHere(test, "Expected %s, got %s", common.EBADF, err)
	}

	proc.Exit()
	if err := fs.Shutdown(); err != nil {
		ErrorHere(test, "Failed when closing filesystem: %s", err)
	}
}

func TestOpenErrors(test *testing.T) {
	_, proc := OpenMemImage(test, map[string]string{"dir/file": "x"})

	fd, err := proc.Open("missing", common.O_RDONLY, 0)
	assert.Equal(test, common.ENOENT, err)
	assert.Equal(test, common.NO_FILE, fd)

	_, err = proc.Open("", common.O_RDONLY, 0)
	assert.Equal(test, common.ENOENT, err)

	_, err = proc.Open("dir", common.O_RDONLY, 0)
	assert.Equal(test, common.EISDIR, err)

	_, err = proc.Open("README", common.O_ACCMODE, 0)
	assert.Equal(test, common.EINVAL, err)

	_, err = proc.Open("README", common.O_CREAT|common.O_EXCL|common.O_WRONLY, 0644)
	assert.Equal(test, common.EEXIST, err)

	assert.Equal(test, common.EBADF, proc.Close(common.Fd(-3)))
	assert.Equal(test, common.EBADF, proc.Close(common.Fd(common.OPEN_MAX)))
}

func TestOpenTooManyFiles(test *testing.T) {
	_, proc := OpenMemImage(test, nil)

	for i := 0; i < common.OPEN_MAX; i++ {
		_, err := proc.Open("README", common.O_RDONLY, 0)
		require.NoError(test, err)
	}

	_, err := proc.Open("README", common.O_RDONLY, 0)
	assert.Equal(test, common.EMFILE, err)
}

// Ensure that open files prevent a clean shutdown, and that exit() releases
// them all.
func TestExitClosesFiles(test *testing.T) {
	fs, proc := OpenMemImage(test, nil)

	fds := make([]common.Fd, 0, 5)
	for i := 0; i < 5; i++ {
		fd, err := proc.Open("README", common.O_RDONLY, 0)
		if err != nil {
			FatalHere(test, "Failed to open sample file: %s", err)
		}
		fds = append(fds, fd)
	}
	assert.Equal(test, 5, fs.files["README"].count)

	err := fs.Shutdown()
	if err != common.EBUSY {
		ErrorHere(test, "Expected %s, got %s", common.EBUSY, err)
	}

	proc.Exit()

	for _, fd := range fds {
		if proc.files[fd] != nil {
			ErrorHere(test, "Filp[%d] is non-nil", fd)
		}
	}

	if err := fs.Shutdown(); err != nil {
		ErrorHere(test, "Failed when closing filesystem: %s", err)
	}
}

func TestCreatTruncWrite(test *testing.T) {
	_, proc := OpenMemImage(test, nil)

	fd, err := proc.Creat("/notes.txt", common.O_WRONLY, 0644)
	require.NoError(test, err)

	n, err := proc.Write(fd, []byte("hello world"))
	require.NoError(test, err)
	assert.Equal(test, 11, n)

	// Writing to a write-only descriptor works, reading from it does not
	_, err = proc.Read(fd, make([]byte, 1))
	assert.Equal(test, common.EBADF, err)
	require.NoError(test, proc.Close(fd))

	fd, err = proc.Open("notes.txt", common.O_RDONLY, 0)
	require.NoError(test, err)
	_, err = proc.Write(fd, []byte("nope"))
	assert.Equal(test, common.EBADF, err)

	buf := make([]byte, 32)
	n, err = proc.Read(fd, buf)
	require.NoError(test, err)
	assert.Equal(test, "hello world", string(buf[:n]))
	require.NoError(test, proc.Close(fd))

	fd, err = proc.Open("notes.txt", common.O_RDWR|common.O_TRUNC, 0)
	require.NoError(test, err)
	pos, err := proc.Seek(fd, 0, common.SEEK_END)
	require.NoError(test, err)
	assert.Equal(test, 0, pos)
	require.NoError(test, proc.Close(fd))
}

// A forked child shares the parent's descriptors, including the position.
func TestForkSharesDescriptors(test *testing.T) {
	fs, proc := OpenMemImage(test, map[string]string{"digits": "0123456789"})

	fd, err := proc.Open("digits", common.O_RDONLY, 0)
	require.NoError(test, err)

	child, err := proc.Fork()
	require.NoError(test, err)

	buf := make([]byte, 3)
	n, err := child.Read(fd, buf)
	require.NoError(test, err)
	assert.Equal(test, "012", string(buf[:n]))

	n, err = proc.Read(fd, buf)
	require.NoError(test, err)
	assert.Equal(test, "345", string(buf[:n]))

	// Closing in the parent leaves the child's reference open
	require.NoError(test, proc.Close(fd))
	assert.Len(test, fs.files, 1)

	n, err = child.Read(fd, buf)
	require.NoError(test, err)
	assert.Equal(test, "678", string(buf[:n]))

	child.Exit()
	assert.Empty(test, fs.files)

	_, err = proc.Wait()
	require.NoError(test, err)
	require.NoError(test, fs.Shutdown())
}
