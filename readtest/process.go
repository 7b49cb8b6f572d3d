package readtest

import (
	"github.com/jnwhiteh/readcount/common"
	"github.com/jnwhiteh/readcount/fs"
)

// Counter exposes the global read counter.
type Counter interface {
	GetReadCount() int
}

// Process is the set of system calls the test makes. Fork returns the
// child's handle; the caller runs the child's side of the fork on it.
type Process interface {
	Counter
	Open(path string, flags int, mode uint16) (common.Fd, error)
	Read(fd common.Fd, buf []byte) (int, error)
	Close(fd common.Fd) error
	Fork() (Process, error)
	Wait() (int, error)
	Exit()
}

type kernelProcess struct {
	*fs.Process
}

// Kernel adapts a process of the userspace kernel to Process.
func Kernel(proc *fs.Process) Process {
	return kernelProcess{proc}
}

func (p kernelProcess) Fork() (Process, error) {
	child, err := p.Process.Fork()
	if err != nil {
		return nil, err
	}
	return kernelProcess{child}, nil
}
