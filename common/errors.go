package common

import "errors"

// The following string constants are taken from the Minix 3.1.0 source,
// specifically from lib/ansi/errlist.c.

var (
	EAGAIN  = errors.New("Resource temporarily unavailable")
	EBADF   = errors.New("Bad file number")
	EBUSY   = errors.New("Resource busy")
	ECHILD  = errors.New("No child processes")
	EINVAL  = errors.New("Invalid argument")
	EISDIR  = errors.New("Is a directory")
	EMFILE  = errors.New("Too many open files")
	ENOENT  = errors.New("No such file or directory")
	ESRCH   = errors.New("No such process")
	EEXIST  = errors.New("File exists")
)
