package fs

import (
	"github.com/jnwhiteh/readcount/common"
)

// A Process is a handle on an entry in the process table. Each method is a
// system call that is forwarded to the file system server.
type Process struct {
	pid    int         // the numeric id of this process
	parent *Process    // the process that will reap this one, if any
	files  []*filp     // list of file descriptors
	zombie bool        // exited but not yet reaped
	waiter chan resFS  // callback for a pending wait(), if any
	fs     *FileSystem // the file system for this process
}

// Pid returns the numeric id of the process.
func (proc *Process) Pid() int {
	return proc.pid
}

func (proc *Process) Fork() (*Process, error) {
	proc.fs.in <- req_FS_Fork{proc}
	result := (<-proc.fs.out).(res_FS_Fork)
	return result.Arg0, result.Arg1
}

// Exit closes every open file descriptor and leaves the process as a zombie
// until its parent reaps it with Wait. Calling Exit more than once has no
// further effect.
func (proc *Process) Exit() {
	proc.fs.in <- req_FS_Exit{proc}
	<-proc.fs.out
}

// Wait blocks until one of the children of the process has exited, reaps
// it and returns its pid. It fails with ECHILD if the process has no
// children.
func (proc *Process) Wait() (int, error) {
	proc.fs.in <- req_FS_Wait{proc}
	res := <-proc.fs.out
	if ares, ok := res.(res_FS_Async); ok {
		res = <-ares.ch
	}
	result := res.(res_FS_Wait)
	return result.Arg0, result.Arg1
}

func (proc *Process) Open(path string, flags int, mode uint16) (common.Fd, error) {
	proc.fs.in <- req_FS_OpenCreat{proc, path, flags, mode}
	result := (<-proc.fs.out).(res_FS_OpenCreat)
	return result.Arg0, result.Arg1
}

func (proc *Process) Creat(path string, flags int, mode uint16) (common.Fd, error) {
	proc.fs.in <- req_FS_OpenCreat{proc, path, flags | common.O_CREAT, mode}
	result := (<-proc.fs.out).(res_FS_OpenCreat)
	return result.Arg0, result.Arg1
}

func (proc *Process) Close(fd common.Fd) error {
	proc.fs.in <- req_FS_Close{proc, fd}
	result := (<-proc.fs.out).(res_FS_Close)
	return result.Arg0
}

// Read reads up to len(buf) bytes from the file at the current position of
// fd. Every call made against a descriptor that is open for reading counts
// towards the global read count, whether or not any bytes are transferred.
func (proc *Process) Read(fd common.Fd, buf []byte) (int, error) {
	proc.fs.in <- req_FS_Read{proc, fd}
	result := (<-proc.fs.out).(res_FS_Filp)
	if result.Arg1 != nil {
		return 0, result.Arg1
	}
	return result.Arg0.Read(buf)
}

func (proc *Process) Write(fd common.Fd, buf []byte) (int, error) {
	proc.fs.in <- req_FS_Write{proc, fd}
	result := (<-proc.fs.out).(res_FS_Filp)
	if result.Arg1 != nil {
		return 0, result.Arg1
	}
	return result.Arg0.Write(buf)
}

func (proc *Process) Seek(fd common.Fd, pos, whence int) (int, error) {
	proc.fs.in <- req_FS_Seek{proc, fd}
	result := (<-proc.fs.out).(res_FS_Filp)
	if result.Arg1 != nil {
		return -1, result.Arg1
	}
	return result.Arg0.Seek(pos, whence)
}

// GetReadCount returns the number of read calls made by all processes since
// the file system was started.
func (proc *Process) GetReadCount() int {
	proc.fs.in <- req_FS_GetReadCount{}
	result := (<-proc.fs.out).(res_FS_GetReadCount)
	return result.Arg0
}

// Shut down the file system. This fails with EBUSY while any process other
// than the root process is still running or any file is still open.
func (fs *FileSystem) Shutdown() error {
	fs.in <- req_FS_Shutdown{}
	result := (<-fs.out).(res_FS_Shutdown)
	return result.Arg0
}
