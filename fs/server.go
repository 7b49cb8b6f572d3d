package fs

import (
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/segmentio/stats/v5"

	"github.com/jnwhiteh/readcount/common"
	"github.com/jnwhiteh/readcount/log"
)

// A FileSystem is a small userspace kernel. It owns the process table, the
// table of open backing files and the global read counter, and serves every
// system call from a single goroutine so that all updates to these tables
// are totally ordered.
type FileSystem struct {
	root  billy.Filesystem     // the backing store
	files map[string]*openFile // shared file servers, keyed by clean path

	procs      map[int]*Process // the list of user processes, zombies included
	pidcounter int              // the next available pid
	maxprocs   int              // the size of the process table
	readcount  int              // read calls made against valid descriptors

	stats *stats.Engine
	log   log.Logger

	in  chan reqFS
	out chan resFS
}

// An openFile is an entry in the table of backing files; count is the
// number of filps that refer to it.
type openFile struct {
	file  common.File
	count int
}

// Option configures a FileSystem.
type Option func(*FileSystem)

// WithMaxProcs sets the size of the process table. Fork fails with EAGAIN
// once the table is full.
func WithMaxProcs(n int) Option {
	return func(fs *FileSystem) { fs.maxprocs = n }
}

// WithStats sets the engine on which system call metrics are produced.
func WithStats(eng *stats.Engine) Option {
	return func(fs *FileSystem) { fs.stats = eng }
}

// WithLogger sets the logger used for process lifecycle events.
func WithLogger(l log.Logger) Option {
	return func(fs *FileSystem) { fs.log = l }
}

// Create a new FileSystem rooted at a directory of the host filesystem
func OpenFileSystemDir(dir string, opts ...Option) (*FileSystem, *Process, error) {
	fi, err := os.Stat(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("fs: stat %q: %w", dir, err)
	}
	if !fi.IsDir() {
		return nil, nil, fmt.Errorf("fs: %q: %w", dir, common.EINVAL)
	}
	return NewFileSystem(osfs.New(dir), opts...)
}

// Create a new FileSystem backed by root, returning the file system along
// with its root process.
func NewFileSystem(root billy.Filesystem, opts ...Option) (*FileSystem, *Process, error) {
	if root == nil {
		return nil, nil, common.EINVAL
	}

	fs := &FileSystem{
		root:     root,
		files:    make(map[string]*openFile),
		maxprocs: common.NR_PROCS,
		stats:    stats.NewEngine("readcount", stats.Discard),
		log:      log.Default,
	}
	for _, opt := range opts {
		opt(fs)
	}
	if fs.maxprocs < 1 {
		return nil, nil, common.EINVAL
	}

	fs.procs = make(map[int]*Process, fs.maxprocs)

	fs.in = make(chan reqFS)
	fs.out = make(chan resFS)

	// Create the root process
	fs.procs[common.ROOT_PROCESS] = &Process{
		pid:   common.ROOT_PROCESS,
		files: make([]*filp, common.OPEN_MAX),
		fs:    fs,
	}

	// Initialise the pidcounter
	fs.pidcounter = common.ROOT_PROCESS + 1

	go fs.loop()

	return fs, fs.procs[common.ROOT_PROCESS], nil
}

// Root returns the backing store of the file system.
func (fs *FileSystem) Root() billy.Filesystem {
	return fs.root
}

func (fs *FileSystem) loop() {
	alive := true
	for alive {
		req := <-fs.in
		switch req := req.(type) {
		case req_FS_Shutdown:
			err := fs.do_shutdown()
			if err == nil {
				alive = false
			}
			fs.out <- res_FS_Shutdown{err}
		case req_FS_Fork:
			proc, err := fs.do_fork(req.proc)
			fs.out <- res_FS_Fork{proc, err}
		case req_FS_Exit:
			fs.do_exit(req.proc)
			fs.out <- res_FS_Exit{}
		case req_FS_Wait:
			pid, ch, err := fs.do_wait(req.proc)
			if ch != nil {
				// The caller blocks on the callback until a child exits
				fs.out <- res_FS_Async{ch}
			} else {
				fs.out <- res_FS_Wait{pid, err}
			}
		case req_FS_OpenCreat:
			fd, err := fs.do_open(req.proc, req.path, req.flags, req.mode)
			fs.out <- res_FS_OpenCreat{fd, err}
		case req_FS_Close:
			err := fs.do_close(req.proc, req.fd)
			fs.out <- res_FS_Close{err}
		case req_FS_Read:
			filp, err := fs.do_read(req.proc, req.fd)
			fs.out <- res_FS_Filp{filp, err}
		case req_FS_Write:
			filp, err := fs.do_write(req.proc, req.fd)
			fs.out <- res_FS_Filp{filp, err}
		case req_FS_Seek:
			filp, err := fs.do_seek(req.proc, req.fd)
			fs.out <- res_FS_Filp{filp, err}
		case req_FS_GetReadCount:
			fs.out <- res_FS_GetReadCount{fs.readcount}
		}
	}
}
