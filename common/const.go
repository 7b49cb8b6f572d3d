package common

const (
	NR_PROCS     = 64 // the maximum number of processes
	OPEN_MAX     = 16 // the number of file descriptors per process
	ROOT_PROCESS = 1  // the pid of the root (init) process

	NO_FILE Fd = -1 // returned by open() on failure
	NO_PID     = -1 // returned by fork()/wait() on failure

	// Oflag values for open().  POSIX Table 6-4.
	O_CREAT = 00100 // creat flag if it doesn't exist
	O_EXCL  = 00200 // exclusive use flag
	O_TRUNC = 01000 // truncate flag

	// File access modes for open() and fcntl().  POSIX Table 6-6.
	O_RDONLY  = 0 // open(name, O_RDONLY) opens read only
	O_WRONLY  = 1 // open(name, O_WRONLY) opens write only
	O_RDWR    = 2 // open(name, O_RDWR) opens read/write
	O_ACCMODE = 3 // mask for file access modes

	R_BIT = 0000004 // Rwx protection bit
	W_BIT = 0000002 // rWx protection bit

	ALL_MODES = 0007777 // all bits for user, group and others

	// Whence values for lseek()
	SEEK_SET = 0
	SEEK_CUR = 1
	SEEK_END = 2
)
