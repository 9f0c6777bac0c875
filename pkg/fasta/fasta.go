// Package fasta reads FASTA sequence files.
//
// Inputs may be plain text, gzip-compressed (detected by magic number or
// a .gz suffix), or "-" for stdin. Whole contigs are held in memory: the
// layout planner needs every contig's exact length before a single pixel
// can be placed, so streaming per-base is no help here.
package fasta

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"os"
	"strings"

	"github.com/genotile/genotile/pkg/errors"
)

// Record is one parsed FASTA contig.
type Record struct {
	Name string
	Seq  []byte
}

// Length returns the sequence length as the layout engine counts it.
func (r Record) Length() int64 {
	return int64(len(r.Seq))
}

// maxLine allows very long single-line sequences (some assemblies emit
// a whole chromosome on one line).
const maxLine = 64 * 1024 * 1024

// multiReadCloser closes multiple io.Closers when Close() is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open opens a FASTA input path, transparently handling gzip and "-"
// for stdin.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "failed to open %s", path)
	}
	// Detect gzip by magic number (1F 8B) or by .gz suffix.
	var sig [2]byte
	n, _ := fh.Read(sig[:])
	_, _ = fh.Seek(0, io.SeekStart)
	if (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "bad gzip stream %s", path)
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, fh}}, nil
	}
	return fh, nil
}

// Stream parses FASTA from r and emits one Record per contig, in file
// order. It is cancelable, returning promptly when ctx is done, even
// mid-record.
func Stream(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var (
		name    string
		seq     = make([]byte, 0, 1<<20)
		started bool
	)

	flush := func() error {
		if !started {
			return nil
		}
		return emit(Record{Name: name, Seq: append([]byte(nil), seq...)})
	}

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			name = string(bytes.TrimSpace(line[1:]))
			seq = seq[:0]
			started = true
			continue
		}
		if !started {
			return errors.New(errors.ErrCodeInvalidInput, "sequence data before first FASTA header")
		}
		seq = append(seq, bytes.TrimSpace(line)...)
	}
	if err := sc.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "fasta scan")
	}
	return flush()
}

// ReadContigs reads every contig from a FASTA input path.
func ReadContigs(ctx context.Context, path string) ([]Record, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var records []Record
	if err := Stream(ctx, rc, func(r Record) error {
		records = append(records, r)
		return nil
	}); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no FASTA records in %s", path)
	}
	return records, nil
}

// PluckContig scans a genome file for a single contig by header name and
// returns its sequence, upper-cased so downstream equality checks work.
func PluckContig(ctx context.Context, path, name string) ([]byte, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var found []byte
	err = Stream(ctx, rc, func(r Record) error {
		if r.Name == name {
			found = bytes.ToUpper(r.Seq)
			return errStopScan
		}
		return nil
	})
	if err != nil && err != errStopScan {
		return nil, err
	}
	if found == nil {
		return nil, errors.New(errors.ErrCodeContigNotFound, "contig %q not found in %s", name, path)
	}
	return found, nil
}

// errStopScan aborts a Stream early once the wanted contig is in hand.
var errStopScan = errors.New(errors.ErrCodeInternal, "stop scan")
