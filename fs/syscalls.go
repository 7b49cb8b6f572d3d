package fs

import (
	"errors"
	"fmt"
	"os"

	"github.com/jnwhiteh/readcount/common"
	"github.com/jnwhiteh/readcount/file"
)

func (fs *FileSystem) do_fork(proc *Process) (*Process, error) {
	if proc.zombie {
		return nil, common.ESRCH
	}
	// Zombies hold on to their slot until they are reaped
	if len(fs.procs) >= fs.maxprocs {
		return nil, common.EAGAIN
	}

	// Fork a process, sharing all of the open file descriptors
	child := &Process{
		pid:    fs.pidcounter,
		parent: proc,
		files:  make([]*filp, common.OPEN_MAX),
		fs:     fs,
	}
	fs.pidcounter++

	for idx, fd := range proc.files {
		if fd != nil {
			fd.Dup()
			child.files[idx] = fd
		}
	}

	fs.procs[child.pid] = child
	fs.stats.Incr("proc.fork")
	fs.log.Debugf("fork: pid %d created child %d", proc.pid, child.pid)
	return child, nil
}

func (fs *FileSystem) do_exit(proc *Process) {
	if proc.zombie || fs.procs[proc.pid] != proc {
		return
	}

	// Close all open file descriptors
	for i := 0; i < len(proc.files); i++ {
		fd := proc.files[i]
		if fd != nil {
			if err := fs.release(fd); err != nil {
				fs.log.Errorf("Failed when closing file in exit(%d): %s", proc.pid, err)
			}
		}
		proc.files[i] = nil
	}

	// A pending wait() can never be satisfied now
	if proc.waiter != nil {
		proc.waiter <- res_FS_Wait{common.NO_PID, common.ECHILD}
		proc.waiter = nil
	}

	fs.reparent(proc)

	proc.zombie = true
	fs.stats.Incr("proc.exit")
	fs.log.Debugf("exit: pid %d", proc.pid)

	switch {
	case proc.parent == nil:
		// Nobody will wait for this process
		delete(fs.procs, proc.pid)
	case proc.parent.waiter != nil:
		fs.notify(proc.parent, proc)
	}
}

// Returns the pid of a reaped child, or a callback channel on which the
// result will be delivered once a child exits.
func (fs *FileSystem) do_wait(proc *Process) (int, chan resFS, error) {
	if proc.zombie {
		return common.NO_PID, nil, common.ESRCH
	}

	var found bool
	var zombie *Process
	for _, p := range fs.procs {
		if p.parent != proc {
			continue
		}
		found = true
		if p.zombie && (zombie == nil || p.pid < zombie.pid) {
			zombie = p
		}
	}

	if !found {
		return common.NO_PID, nil, common.ECHILD
	}
	if zombie != nil {
		return fs.reap(zombie), nil, nil
	}

	proc.waiter = make(chan resFS, 1)
	return common.NO_PID, proc.waiter, nil
}

// Attempt to shut down the file system, only return nil if the shutdown
// was successful and the main server loop can exit.
func (fs *FileSystem) do_shutdown() error {
	for _, p := range fs.procs {
		if p.pid != common.ROOT_PROCESS && !p.zombie {
			return common.EBUSY
		}
	}
	if len(fs.files) > 0 {
		return common.EBUSY
	}

	fs.procs = make(map[int]*Process)
	fs.log.Debugf("shutdown: %d reads served", fs.readcount)
	return nil
}

var mode_map = []uint16{
	common.R_BIT,
	common.W_BIT,
	common.R_BIT | common.W_BIT,
	0}

func (fs *FileSystem) do_open(proc *Process, path string, oflags int, omode uint16) (common.Fd, error) {
	if proc.zombie {
		return common.NO_FILE, common.ESRCH
	}

	// Remap the bottom two bits of oflags
	bits := mode_map[oflags&common.O_ACCMODE]
	if bits == 0 {
		return common.NO_FILE, common.EINVAL
	}

	name := cleanPath(path)
	if name == "" {
		return common.NO_FILE, common.ENOENT
	}

	// Find an available filp entry for the file descriptor
	fdindex := -1
	for i := 0; i < len(proc.files); i++ {
		if proc.files[i] == nil {
			fdindex = i
			break
		}
	}

	if fdindex == -1 {
		return common.NO_FILE, common.EMFILE
	}

	info, err := fs.root.Stat(name)
	switch {
	case err == nil:
		if info.IsDir() {
			// Directories cannot be opened in this system
			return common.NO_FILE, common.EISDIR
		}
		if oflags&common.O_CREAT > 0 && oflags&common.O_EXCL > 0 {
			return common.NO_FILE, common.EEXIST
		}
	case errors.Is(err, os.ErrNotExist):
		if oflags&common.O_CREAT == 0 {
			return common.NO_FILE, common.ENOENT
		}
		if err := fs.create(name, omode); err != nil {
			return common.NO_FILE, err
		}
	default:
		return common.NO_FILE, fmt.Errorf("fs: stat %q: %w", name, err)
	}

	// Make sure there is a 'File' server running
	of := fs.files[name]
	if of == nil {
		f, err := file.NewFile(fs.root, name)
		if err != nil {
			return common.NO_FILE, err
		}
		of = &openFile{f, 1}
		fs.files[name] = of
	} else {
		of.file.Dup()
		of.count++
	}

	if oflags&common.O_TRUNC > 0 && bits&common.W_BIT > 0 {
		if err := of.file.Truncate(0); err != nil {
			fs.drop(name)
			return common.NO_FILE, err
		}
	}

	// Create a new 'filp' object to expose to the user
	proc.files[fdindex] = newFilp(of.file, name, bits)

	return common.Fd(fdindex), nil
}

func (fs *FileSystem) do_close(proc *Process, fd common.Fd) error {
	filp, err := fs.getFilp(proc, fd)
	if err != nil {
		return err
	}

	proc.files[fd] = nil
	return fs.release(filp)
}

// Only reads against a descriptor that is open for reading are counted.
func (fs *FileSystem) do_read(proc *Process, fd common.Fd) (*filp, error) {
	filp, err := fs.getFilp(proc, fd)
	if err != nil {
		return nil, err
	}
	if filp.mode&common.R_BIT == 0 {
		return nil, common.EBADF
	}

	fs.readcount++
	fs.stats.Incr("syscall.read")
	return filp, nil
}

func (fs *FileSystem) do_write(proc *Process, fd common.Fd) (*filp, error) {
	filp, err := fs.getFilp(proc, fd)
	if err != nil {
		return nil, err
	}
	if filp.mode&common.W_BIT == 0 {
		return nil, common.EBADF
	}

	fs.stats.Incr("syscall.write")
	return filp, nil
}

func (fs *FileSystem) do_seek(proc *Process, fd common.Fd) (*filp, error) {
	return fs.getFilp(proc, fd)
}
