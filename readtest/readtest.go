// Package readtest checks the kernel's global read counter. It forks, has
// both the parent and the child read a few bytes from a file one byte at a
// time, and verifies that the counter rose by the expected amount once the
// child has been reaped.
package readtest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/jnwhiteh/readcount/common"
	"github.com/jnwhiteh/readcount/log"
)

const (
	DefaultPath     = "README"
	DefaultReads    = 5
	DefaultExpected = 10
)

type config struct {
	path     string
	reads    int
	expected int
	out      io.Writer
	counter  Counter
}

// Option configures Run.
type Option func(*config)

// WithPath sets the file that is read. Defaults to README.
func WithPath(path string) Option {
	return func(c *config) { c.path = path }
}

// WithReads sets the number of one-byte reads made by each process.
func WithReads(n int) Option {
	return func(c *config) { c.reads = n }
}

// WithExpected sets the expected growth of the read counter.
func WithExpected(n int) Option {
	return func(c *config) { c.expected = n }
}

// WithOutput sets where results are printed. Defaults to standard output.
func WithOutput(w io.Writer) Option {
	return func(c *config) { c.out = w }
}

// WithCounter reads the counter from c instead of from the process under
// test.
func WithCounter(c Counter) Option {
	return func(cfg *config) { cfg.counter = c }
}

// AssertionFailure describes a failed check.
type AssertionFailure struct {
	Expr     string // the expression that did not hold
	File     string
	Line     int
	Expected int
	Actual   int
}

func (f *AssertionFailure) Error() string {
	return fmt.Sprintf("assert failed %s %s %d", f.Expr, f.File, f.Line)
}

// Result is the outcome of a run.
type Result struct {
	Before  int   // counter value before the fork
	After   int   // counter value after the child was reaped
	ForkErr error // set when the fork failed; nothing else ran
	Failure *AssertionFailure
	Passed  bool
}

// Run executes the test on proc, which is exited on every path before Run
// returns, just as the test program exits when it is done.
//
// The read loop runs on both sides of the fork: the child's side on its own
// goroutine against the child process, the parent's side on the calling
// goroutine. The parent then waits for the child before checking the
// counter.
func Run(proc Process, opts ...Option) *Result {
	cfg := &config{
		path:     DefaultPath,
		reads:    DefaultReads,
		expected: DefaultExpected,
		out:      os.Stdout,
		counter:  proc,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	defer proc.Exit()

	res := &Result{}
	res.Before = cfg.counter.GetReadCount()
	fmt.Fprintf(cfg.out, "Read count %d\n", res.Before)

	child, err := proc.Fork()
	if err != nil {
		res.ForkErr = err
		fmt.Fprintf(cfg.out, "Fork failed!\n")
		return res
	}

	var g errgroup.Group
	g.Go(func() error {
		defer child.Exit()
		readFixedBytes(child, cfg.path, cfg.reads)
		return nil
	})

	readFixedBytes(proc, cfg.path, cfg.reads)

	if _, err := proc.Wait(); err != nil {
		log.Warnf("wait: %s", err)
	}
	g.Wait()

	res.After = cfg.counter.GetReadCount()
	fmt.Fprintf(cfg.out, "Read count %d\n", res.After)

	delta := res.After - res.Before
	if f := check(delta == cfg.expected, fmt.Sprintf("(after - before) == %d", cfg.expected), cfg.expected, delta); f != nil {
		res.Failure = f
		fmt.Fprintf(cfg.out, "%s\n", f)
		return res
	}

	res.Passed = true
	fmt.Fprintf(cfg.out, "TEST PASSED\n")
	return res
}

// Open a file and make count one-byte reads from it. Nothing is checked: a
// failed open leaves an invalid descriptor, and the reads and the close
// made on it fail without being counted.
func readFixedBytes(proc Process, path string, count int) {
	fd, err := proc.Open(path, common.O_RDONLY, 0)
	if err != nil {
		log.Debugf("open %s: %s", path, err)
	}

	var buf [1]byte
	for i := 0; i < count; i++ {
		proc.Read(fd, buf[:])
	}
	proc.Close(fd)
}

// Returns a failure located at the caller when cond does not hold.
func check(cond bool, expr string, expected, actual int) *AssertionFailure {
	if cond {
		return nil
	}
	_, file, line, _ := runtime.Caller(1)
	return &AssertionFailure{
		Expr:     expr,
		File:     filepath.Base(file),
		Line:     line,
		Expected: expected,
		Actual:   actual,
	}
}
