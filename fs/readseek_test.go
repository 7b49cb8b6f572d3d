package fs

import (
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnwhiteh/readcount/common"
	. "github.com/jnwhiteh/readcount/testutils"
)

// Read the README one byte at a time and compare against its contents,
// checking that every call is counted, including the one that hits EOF.
func TestReadCountsEveryCall(test *testing.T) {
	fs, proc := OpenMemImage(test, nil)

	fd, err := proc.Open("README", common.O_RDONLY, 0)
	if err != nil {
		FatalHere(test, "Failed when opening file: %s", err)
	}

	before := proc.GetReadCount()
	assert.Equal(test, 0, before)

	data := make([]byte, 0, len(ReadmeContents))
	buf := make([]byte, 1)
	calls := 0
	for {
		n, err := proc.Read(fd, buf)
		calls++
		if err == io.EOF {
			break
		}
		if err != nil {
			FatalHere(test, "Read failed at offset %d: %s", len(data), err)
		}
		data = append(data, buf[:n]...)
	}

	assert.Equal(test, ReadmeContents, string(data))
	assert.Equal(test, len(ReadmeContents)+1, calls)
	assert.Equal(test, before+calls, proc.GetReadCount())

	require.NoError(test, proc.Close(fd))
	proc.Exit()
	require.NoError(test, fs.Shutdown())
}

func TestBadReadsAreNotCounted(test *testing.T) {
	_, proc := OpenMemImage(test, nil)

	_, err := proc.Read(common.NO_FILE, make([]byte, 1))
	assert.Equal(test, common.EBADF, err)
	_, err = proc.Read(common.Fd(3), make([]byte, 1))
	assert.Equal(test, common.EBADF, err)

	fd, err := proc.Creat("out", common.O_WRONLY, 0644)
	require.NoError(test, err)
	_, err = proc.Read(fd, make([]byte, 1))
	assert.Equal(test, common.EBADF, err)

	assert.Equal(test, 0, proc.GetReadCount())
}

// The counter is global: reads made by every process are added together.
func TestReadCountIsGlobal(test *testing.T) {
	_, proc := OpenMemImage(test, nil)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		child, err := proc.Fork()
		require.NoError(test, err)

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer child.Exit()
			fd, err := child.Open("README", common.O_RDONLY, 0)
			if err != nil {
				ErrorHere(test, "Child %d failed to open README: %s", child.Pid(), err)
				return
			}
			buf := make([]byte, 1)
			for j := 0; j < 5; j++ {
				child.Read(fd, buf)
			}
			child.Close(fd)
		}()
	}

	for i := 0; i < 4; i++ {
		_, err := proc.Wait()
		require.NoError(test, err)
	}
	wg.Wait()

	assert.Equal(test, 20, proc.GetReadCount())
}

func TestReadProducesMetrics(test *testing.T) {
	_, proc, h := OpenMemImageWithStats(test, nil)

	fd, err := proc.Open("README", common.O_RDONLY, 0)
	require.NoError(test, err)
	for i := 0; i < 3; i++ {
		_, err := proc.Read(fd, make([]byte, 1))
		require.NoError(test, err)
	}
	_, err = proc.Read(common.NO_FILE, make([]byte, 1))
	assert.Error(test, err)

	assert.Equal(test, 3, countField(h, "read"))
}

func TestSeek(test *testing.T) {
	_, proc := OpenMemImage(test, map[string]string{"digits": "0123456789"})

	fd, err := proc.Open("digits", common.O_RDONLY, 0)
	require.NoError(test, err)

	type seekData struct {
		pos    int
		whence int
		expect int
		data   string
	}

	seekOps := []seekData{
		{0, common.SEEK_SET, 0, "01"},
		{5, common.SEEK_SET, 5, "56"},
		{1, common.SEEK_CUR, 8, "89"},
		{-4, common.SEEK_END, 6, "67"},
	}

	buf := make([]byte, 2)
	for idx, op := range seekOps {
		pos, err := proc.Seek(fd, op.pos, op.whence)
		if err != nil {
			FatalHere(test, "Seek %d failed: %s", idx, err)
		}
		if pos != op.expect {
			ErrorHere(test, "Seek position mismatch in test %d: expected %d, got %d", idx, op.expect, pos)
		}
		n, err := proc.Read(fd, buf)
		require.NoError(test, err)
		assert.Equal(test, op.data, string(buf[:n]), "seek %d", idx)
	}

	_, err = proc.Seek(fd, -1, common.SEEK_SET)
	assert.Equal(test, common.EINVAL, err)
	_, err = proc.Seek(fd, 0, 7)
	assert.Equal(test, common.EINVAL, err)
	_, err = proc.Seek(common.Fd(9), 0, common.SEEK_SET)
	assert.Equal(test, common.EBADF, err)

	// Reading past the end is an EOF, not a failure
	_, err = proc.Seek(fd, 100, common.SEEK_SET)
	require.NoError(test, err)
	n, err := proc.Read(fd, buf)
	assert.Equal(test, 0, n)
	assert.Equal(test, io.EOF, err)
}
