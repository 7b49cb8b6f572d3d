package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/segmentio/stats/v5"
	"github.com/segmentio/stats/v5/debugstats"

	"github.com/jnwhiteh/readcount/common"
	"github.com/jnwhiteh/readcount/fs"
	"github.com/jnwhiteh/readcount/log"
	"github.com/jnwhiteh/readcount/readtest"
)

// This command boots the userspace kernel over a directory of the host
// filesystem and runs the read count test from its root process.

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var root string
	var path string
	var reads int
	var expect int
	var maxprocs int
	var level string
	var metrics bool
	var strict bool

	// Define commandline flags
	flags := flag.NewFlagSet("readcounttest", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&root, "root", ".", "the directory the kernel serves files from")
	flags.StringVar(&path, "file", readtest.DefaultPath, "the file read by the parent and the child")
	flags.IntVar(&reads, "reads", readtest.DefaultReads, "the number of one-byte reads made by each process")
	flags.IntVar(&expect, "expect", readtest.DefaultExpected, "the expected growth of the read count")
	flags.IntVar(&maxprocs, "maxprocs", common.NR_PROCS, "the size of the process table")
	flags.StringVar(&level, "log-level", log.LevelInfo, "the log level (debug, info, warn, error)")
	flags.BoolVar(&metrics, "metrics", false, "print system call metrics to standard error")
	flags.BoolVar(&strict, "strict", false, "exit with status 1 when the test does not pass")

	// Parse the flags from the commandline
	if err := flags.Parse(args); err != nil {
		return 2
	}

	log.SetLevel(level)

	opts := []fs.Option{fs.WithMaxProcs(maxprocs)}
	var eng *stats.Engine
	if metrics {
		eng = stats.NewEngine("readcount", &debugstats.Client{Dst: stderr})
		opts = append(opts, fs.WithStats(eng))
	}

	kernel, proc, err := fs.OpenFileSystemDir(root, opts...)
	if err != nil {
		fmt.Fprintf(stderr, "Unable to boot kernel: %s\n", err)
		return 1
	}

	res := readtest.Run(readtest.Kernel(proc),
		readtest.WithOutput(stdout),
		readtest.WithPath(path),
		readtest.WithReads(reads),
		readtest.WithExpected(expect),
	)

	if err := kernel.Shutdown(); err != nil {
		log.Warnf("shutdown: %s", err)
	}
	if eng != nil {
		eng.Flush()
	}

	if strict && !res.Passed {
		return 1
	}
	return 0
}
