package fs

import (
	"sync"

	"github.com/jnwhiteh/readcount/common"
)

// A filp is a potentially shared instance of an open file. It implements the
// interface used by programs to perform file input/output. It also serves as
// a layer for error-checking, to ensure correct behaviour when a program
// attempts to use a file descriptor that has since been closed.
//
// A filp is created by open() and shared between a parent and child by
// fork(), so the position within the file is shared as well.
type filp struct {
	count int         // the number of descriptors referring to this filp
	pos   int         // the current position in the file
	file  common.File // the file server backing the operations
	name  string      // the clean path of the backing file

	mode uint16 // the mode under which this file was opened

	m *sync.Mutex // for mutual exclusion
}

func newFilp(file common.File, name string, mode uint16) *filp {
	return &filp{1, 0, file, name, mode, new(sync.Mutex)}
}

func (fi *filp) Seek(pos, whence int) (int, error) {
	fi.m.Lock()
	defer fi.m.Unlock()

	if fi.file == nil {
		return -1, common.EBADF
	}

	var npos int
	switch whence {
	case common.SEEK_SET:
		npos = pos
	case common.SEEK_CUR:
		npos = fi.pos + pos
	case common.SEEK_END:
		info, err := fi.file.Fstat()
		if err != nil {
			return -1, err
		}
		npos = int(info.Size()) + pos
	default:
		return -1, common.EINVAL
	}

	if npos < 0 {
		return -1, common.EINVAL
	}
	fi.pos = npos
	return fi.pos, nil
}

func (fi *filp) Read(buf []byte) (int, error) {
	fi.m.Lock()
	defer fi.m.Unlock()

	if fi.file == nil {
		return 0, common.EBADF
	}

	n, err := fi.file.Read(buf, fi.pos)
	fi.pos += n

	return n, err
}

func (fi *filp) Write(buf []byte) (int, error) {
	fi.m.Lock()
	defer fi.m.Unlock()

	if fi.file == nil {
		return 0, common.EBADF
	}

	n, err := fi.file.Write(buf, fi.pos)
	fi.pos += n

	return n, err
}

func (fi *filp) Dup() {
	fi.m.Lock()
	defer fi.m.Unlock()

	fi.count++
}

// This function is not exposed to the user, it only exists to perform the
// cleanup part of the close() and exit() system calls. It reports whether
// this was the last reference, in which case the file server has been
// released.
func (fi *filp) Close() (bool, error) {
	fi.m.Lock()
	defer fi.m.Unlock()

	fi.count--
	if fi.count == 0 {
		err := fi.file.Close()
		fi.file = nil
		return true, err
	}
	return false, nil
}
