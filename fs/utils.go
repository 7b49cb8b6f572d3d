package fs

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/jnwhiteh/readcount/common"
)

// Paths are resolved against the root of the backing store; there is no
// per-process working directory.
func cleanPath(p string) string {
	if p == "" {
		return ""
	}
	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	return p
}

func (fs *FileSystem) getFilp(proc *Process, fd common.Fd) (*filp, error) {
	if proc.zombie {
		return nil, common.ESRCH
	}
	if fd < 0 || int(fd) >= len(proc.files) || proc.files[fd] == nil {
		return nil, common.EBADF
	}
	return proc.files[fd], nil
}

func (fs *FileSystem) create(name string, omode uint16) error {
	f, err := fs.root.OpenFile(name, os.O_CREATE|os.O_RDWR, os.FileMode(omode)&os.ModePerm)
	if err != nil {
		return fmt.Errorf("fs: create %q: %w", name, err)
	}
	return f.Close()
}

// Release a reference to a filp, dropping the backing file server once the
// last filp referring to it has gone.
func (fs *FileSystem) release(fi *filp) error {
	last, err := fi.Close()
	if last {
		of := fs.files[fi.name]
		if of != nil {
			of.count--
			if of.count == 0 {
				delete(fs.files, fi.name)
			}
		}
	}
	return err
}

// Undo the reference taken on a file server by an open() that then failed.
func (fs *FileSystem) drop(name string) {
	of := fs.files[name]
	if of == nil {
		return
	}
	if err := of.file.Close(); err != nil {
		fs.log.Errorf("Failed when releasing %q: %s", name, err)
	}
	of.count--
	if of.count == 0 {
		delete(fs.files, name)
	}
}

func (fs *FileSystem) reap(child *Process) int {
	delete(fs.procs, child.pid)
	child.parent = nil
	return child.pid
}

// Deliver an exited child to a parent blocked in wait().
func (fs *FileSystem) notify(parent, child *Process) {
	pid := fs.reap(child)
	parent.waiter <- res_FS_Wait{pid, nil}
	parent.waiter = nil
}

// Hand the children of an exiting process over to the root process. If the
// root process is itself gone (or is the one exiting), orphaned zombies are
// discarded and live orphans will be discarded when they exit.
func (fs *FileSystem) reparent(proc *Process) {
	initp := fs.procs[common.ROOT_PROCESS]
	if initp == proc || (initp != nil && initp.zombie) {
		initp = nil
	}

	for _, p := range fs.procs {
		if p.parent != proc {
			continue
		}
		p.parent = initp
		if !p.zombie {
			continue
		}
		if initp == nil {
			delete(fs.procs, p.pid)
		} else if initp.waiter != nil {
			fs.notify(initp, p)
		}
	}
}
