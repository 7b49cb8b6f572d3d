package fs

import (
	"github.com/jnwhiteh/readcount/common"
)

type req_FS_Shutdown struct {
}
type res_FS_Shutdown struct {
	Arg0 error
}
type req_FS_Fork struct {
	proc *Process
}
type res_FS_Fork struct {
	Arg0 *Process
	Arg1 error
}
type req_FS_Exit struct {
	proc *Process
}
type res_FS_Exit struct{}
type req_FS_Wait struct {
	proc *Process
}
type res_FS_Wait struct {
	Arg0 int
	Arg1 error
}
type req_FS_OpenCreat struct {
	proc  *Process
	path  string
	flags int
	mode  uint16
}
type res_FS_OpenCreat struct {
	Arg0 common.Fd
	Arg1 error
}
type req_FS_Close struct {
	proc *Process
	fd   common.Fd
}
type res_FS_Close struct {
	Arg0 error
}
type req_FS_Read struct {
	proc *Process
	fd   common.Fd
}
type req_FS_Write struct {
	proc *Process
	fd   common.Fd
}
type req_FS_Seek struct {
	proc *Process
	fd   common.Fd
}
type res_FS_Filp struct {
	Arg0 *filp
	Arg1 error
}
type req_FS_GetReadCount struct {
}
type res_FS_GetReadCount struct {
	Arg0 int
}
type res_FS_Async struct {
	ch chan resFS
}

// Interface types and implementations
type reqFS interface {
	is_reqFS()
}
type resFS interface {
	is_resFS()
}

func (r req_FS_Shutdown) is_reqFS()     {}
func (r res_FS_Shutdown) is_resFS()     {}
func (r req_FS_Fork) is_reqFS()         {}
func (r res_FS_Fork) is_resFS()         {}
func (r req_FS_Exit) is_reqFS()         {}
func (r res_FS_Exit) is_resFS()         {}
func (r req_FS_Wait) is_reqFS()         {}
func (r res_FS_Wait) is_resFS()         {}
func (r req_FS_OpenCreat) is_reqFS()    {}
func (r res_FS_OpenCreat) is_resFS()    {}
func (r req_FS_Close) is_reqFS()        {}
func (r res_FS_Close) is_resFS()        {}
func (r req_FS_Read) is_reqFS()         {}
func (r req_FS_Write) is_reqFS()        {}
func (r req_FS_Seek) is_reqFS()         {}
func (r res_FS_Filp) is_resFS()         {}
func (r req_FS_GetReadCount) is_reqFS() {}
func (r res_FS_GetReadCount) is_resFS() {}
func (r res_FS_Async) is_resFS()        {}

// Type check request/response types
var _ reqFS = req_FS_Shutdown{}
var _ resFS = res_FS_Shutdown{}
var _ reqFS = req_FS_Fork{}
var _ resFS = res_FS_Fork{}
var _ reqFS = req_FS_Exit{}
var _ resFS = res_FS_Exit{}
var _ reqFS = req_FS_Wait{}
var _ resFS = res_FS_Wait{}
var _ reqFS = req_FS_OpenCreat{}
var _ resFS = res_FS_OpenCreat{}
var _ reqFS = req_FS_Close{}
var _ resFS = res_FS_Close{}
var _ reqFS = req_FS_Read{}
var _ reqFS = req_FS_Write{}
var _ reqFS = req_FS_Seek{}
var _ resFS = res_FS_Filp{}
var _ reqFS = req_FS_GetReadCount{}
var _ resFS = res_FS_GetReadCount{}
var _ resFS = res_FS_Async{}
