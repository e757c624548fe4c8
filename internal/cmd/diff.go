package cmd

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/sidediff/sidediff/internal/log"
	"github.com/sidediff/sidediff/internal/render"
)

// runner holds one invocation's resolved configuration and drives the
// comparisons. Runtime trouble (unreadable files, vanished directory
// entries) is reported on stderr and recorded in failed without
// aborting the remaining pairs.
type runner struct {
	opts   render.Options
	colors render.ColorMap

	labels          []string
	head            int
	exclude         *regexp.Regexp
	recursive       bool
	reportIdentical bool
	noHeaders       bool
	showPerms       bool

	stdout io.Writer
	stderr io.Writer
	failed bool
}

func (r *runner) fail(err error) {
	fmt.Fprintf(r.stderr, "sidediff: %v\n", err)
	r.failed = true
}

// meta writes a one-line notice, colored like diff -r furniture.
func (r *runner) meta(format string, args ...any) {
	fmt.Fprintln(r.stdout, r.colors.Colorize(render.CategoryMeta, fmt.Sprintf(format, args...)))
}

func (r *runner) comparePaths(a, b string) {
	aInfo, err := os.Stat(a)
	if err != nil {
		r.fail(err)
		return
	}
	bInfo, err := os.Stat(b)
	if err != nil {
		r.fail(err)
		return
	}

	switch {
	case aInfo.IsDir() && bInfo.IsDir():
		r.compareDirs(a, b)
	case aInfo.IsDir():
		r.meta("File %s is a directory while %s is a regular file", a, b)
	case bInfo.IsDir():
		r.meta("File %s is a regular file while %s is a directory", a, b)
	default:
		r.compareFiles(a, b)
	}
}

// compareDirs walks the union of both directories' entries in sorted
// order. Entries present on one side only are reported; common entries
// descend only under --recursive.
func (r *runner) compareDirs(a, b string) {
	aNames, err := dirNames(a)
	if err != nil {
		r.fail(err)
		return
	}
	bNames, err := dirNames(b)
	if err != nil {
		r.fail(err)
		return
	}

	union := make([]string, 0, len(aNames)+len(bNames))
	for name := range aNames {
		union = append(union, name)
	}
	for name := range bNames {
		if !aNames[name] {
			union = append(union, name)
		}
	}
	sort.Strings(union)

	for _, name := range union {
		switch {
		case !bNames[name]:
			r.meta("Only in %s: %s", a, name)
		case !aNames[name]:
			r.meta("Only in %s: %s", b, name)
		case r.recursive:
			r.comparePaths(filepath.Join(a, name), filepath.Join(b, name))
		}
	}
}

func dirNames(dir string) (map[string]bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make(map[string]bool, len(entries))
	for _, e := range entries {
		names[e.Name()] = true
	}
	return names, nil
}

func (r *runner) compareFiles(a, b string) {
	log.Debugf("comparing %s and %s", a, b)

	same, err := identicalFiles(a, b)
	if err != nil {
		r.fail(err)
		return
	}
	if same {
		if r.reportIdentical {
			fmt.Fprintf(r.stdout, "Files %s and %s are identical\n", a, b)
		}
		return
	}

	aLines, err := r.readLines(a)
	if err != nil {
		r.fail(err)
		return
	}
	bLines, err := r.readLines(b)
	if err != nil {
		r.fail(err)
		return
	}

	opts := r.opts
	if !r.noHeaders {
		opts.FromDesc, opts.ToDesc = a, b
		if len(r.labels) == 2 {
			opts.FromDesc, opts.ToDesc = r.labels[0], r.labels[1]
		}
	}
	if r.showPerms {
		opts.FromPerm = modeString(a)
		opts.ToPerm = modeString(b)
	}

	rows, err := render.MakeTable(aLines, bLines, opts)
	if err != nil {
		r.fail(err)
		return
	}
	w := bufio.NewWriter(r.stdout)
	for rows.Next() {
		w.WriteString(rows.Row())
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		r.fail(err)
	}
}

// readLines reads path into raw lines, newlines kept. --head bounds the
// number of lines read, --exclude-lines drops matching lines before the
// comparison sees them.
func (r *runner) readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	br := bufio.NewReader(f)
	for {
		if r.head > 0 && len(lines) >= r.head {
			break
		}
		line, err := br.ReadString('\n')
		if line != "" && (r.exclude == nil || !r.exclude.MatchString(line)) {
			lines = append(lines, line)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}
	return lines, nil
}

// identicalFiles compares the two files byte for byte without loading
// either into memory.
func identicalFiles(a, b string) (bool, error) {
	aInfo, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	bInfo, err := os.Stat(b)
	if err != nil {
		return false, err
	}
	if aInfo.Size() != bInfo.Size() {
		return false, nil
	}

	af, err := os.Open(a)
	if err != nil {
		return false, err
	}
	defer af.Close()
	bf, err := os.Open(b)
	if err != nil {
		return false, err
	}
	defer bf.Close()

	abuf := make([]byte, 64*1024)
	bbuf := make([]byte, 64*1024)
	for {
		an, aerr := io.ReadFull(af, abuf)
		bn, berr := io.ReadFull(bf, bbuf)
		if !bytes.Equal(abuf[:an], bbuf[:bn]) {
			return false, nil
		}
		aDone := aerr == io.EOF || aerr == io.ErrUnexpectedEOF
		bDone := berr == io.EOF || berr == io.ErrUnexpectedEOF
		if aDone || bDone {
			return aDone == bDone && an == bn, nil
		}
		if aerr != nil {
			return false, aerr
		}
		if berr != nil {
			return false, berr
		}
	}
}

func modeString(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	return info.Mode().String()
}
