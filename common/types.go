package common

import "os"

// A file descriptor, as handed out by open(). Descriptors index the
// per-process file table and are only meaningful to the process that owns
// them (or its children after a fork).
type Fd int

// Private interface to an open backing file, shared by every filp that
// refers to the same path. Positions are supplied by the caller.
type File interface {
	Read(buf []byte, pos int) (int, error)
	Write(buf []byte, pos int) (int, error)
	Truncate(length int) error
	Fstat() (os.FileInfo, error)
	Dup() File
	Close() error
}
