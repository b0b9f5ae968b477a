// main.go: package main - hashconsctl deduplicates newline-delimited
// input and reports how much it saved.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/agilira/hashcons"
)

func main() {
	auto := flag.Bool("auto-cleanup", true, "destroy a slot's table entry immediately when its last handle is released")
	quiet := flag.Bool("quiet", false, "suppress the per-line canonical/duplicate report")
	flag.Parse()

	if err := run(os.Stdin, os.Stdout, *auto, *quiet); err != nil {
		fmt.Fprintln(os.Stderr, "hashconsctl:", err)
		os.Exit(1)
	}
}

// run reads newline-delimited values from in, hashconses each one, and
// writes a summary to out. A table is used instead of a plain map so the
// example exercises the same Hashcons/Release path a long-lived
// process would.
func run(in io.Reader, out io.Writer, autoCleanup, quiet bool) error {
	table := hashcons.New[string](hashcons.Config{AutoCleanup: autoCleanup})

	var handles []hashcons.Handle[string]
	defer func() {
		for _, h := range handles {
			h.Release()
		}
	}()

	scanner := bufio.NewScanner(in)
	lines, canonical := 0, 0
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		lines++

		sizeBefore := table.Size()
		h := table.Hashcons(line)
		handles = append(handles, h)

		isNew := table.Size() > sizeBefore
		if isNew {
			canonical++
		}
		if !quiet {
			status := "duplicate"
			if isNew {
				status = "canonical"
			}
			fmt.Fprintf(out, "%s\t%s\n", status, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	fmt.Fprintf(out, "lines=%d canonical=%d table_size=%d\n", lines, canonical, table.Size())
	return nil
}
