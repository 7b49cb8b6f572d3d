package file

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/jnwhiteh/readcount/common"
)

type server_File struct {
	fs    billy.Filesystem // the filesystem holding the backing file
	name  string           // the path of the backing file within fs
	bf    billy.File       // the open backing file
	count int              // the number of clients of this server
	wg    *sync.WaitGroup  // tracking outstanding read requests

	in  chan reqFile
	out chan resFile
}

// NewFile opens the named file on fs and spawns a server to handle reading
// and writing it. The backing file is opened read/write when the filesystem
// allows it, and read-only otherwise; writes against a read-only backing
// file fail when they reach it.
func NewFile(fs billy.Filesystem, name string) (common.File, error) {
	bf, err := fs.OpenFile(name, os.O_RDWR, 0)
	if err != nil {
		bf, err = fs.OpenFile(name, os.O_RDONLY, 0)
	}
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, common.ENOENT
		}
		return nil, fmt.Errorf("file: open %q: %w", name, err)
	}

	file := &server_File{
		fs,
		name,
		bf,
		1,
		new(sync.WaitGroup),
		make(chan reqFile),
		make(chan resFile),
	}

	go file.loop()
	return file, nil
}

func (file *server_File) loop() {
	alive := true
	for alive {
		req := <-file.in
		switch req := req.(type) {
		case req_File_Read:
			// Indicate we have another outstanding reader
			file.wg.Add(1)
			callback := make(chan resFile)
			file.out <- res_File_Async{callback}

			// Launch a new goroutine to perform the read, using the callback
			// channel to return the result.
			go func() {
				n, err := file.read(req.buf, req.pos)
				callback <- res_File_Read{n, err}
				file.wg.Done() // signal completion
			}()
		case req_File_Write:
			file.wg.Wait() // wait for any outstanding reads to complete before proceeding
			n, err := file.write(req.buf, req.pos)
			file.out <- res_File_Write{n, err}
		case req_File_Truncate:
			file.wg.Wait() // wait for any outstanding reads to complete before proceeding
			err := file.bf.Truncate(int64(req.size))
			file.out <- res_File_Truncate{err}
		case req_File_Fstat:
			fi, err := file.fs.Stat(file.name)
			file.out <- res_File_Fstat{fi, err}
		case req_File_Dup:
			file.count++
			file.out <- res_File_Dup{file}
		case req_File_Close:
			file.wg.Wait() // wait for any outstanding reads to complete before proeceding
			file.count--

			var err error
			if file.count == 0 {
				err = file.bf.Close()
				alive = false
			}

			file.out <- res_File_Close{err}
		}
	}
}

// A short read at the end of the file is not an error; a read that starts
// at or beyond the end of the file returns io.EOF.
func (file *server_File) read(buf []byte, pos int) (int, error) {
	if pos < 0 {
		return 0, common.EINVAL
	}
	n, err := file.bf.ReadAt(buf, int64(pos))
	if err == io.EOF && n > 0 {
		err = nil
	}
	return n, err
}

func (file *server_File) write(buf []byte, pos int) (int, error) {
	if pos < 0 {
		return 0, common.EINVAL
	}
	if _, err := file.bf.Seek(int64(pos), io.SeekStart); err != nil {
		return 0, fmt.Errorf("file: seek %q: %w", file.name, err)
	}
	return file.bf.Write(buf)
}

var _ common.File = &server_File{}
