package fasta

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/genotile/genotile/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestStreamMultiRecord(t *testing.T) {
	input := `>chr1 primary
ACGT
acgt

>chr2
NNNN
`
	var records []Record
	err := Stream(context.Background(), strings.NewReader(input), func(r Record) error {
		records = append(records, r)
		return nil
	})
	if err != nil {
		t.Fatalf("Stream() error = %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].Name != "chr1 primary" || string(records[0].Seq) != "ACGTacgt" {
		t.Errorf("record 0 = %q/%q", records[0].Name, records[0].Seq)
	}
	if records[1].Name != "chr2" || string(records[1].Seq) != "NNNN" {
		t.Errorf("record 1 = %q/%q", records[1].Name, records[1].Seq)
	}
}

func TestStreamCRLF(t *testing.T) {
	input := ">c\r\nACGT\r\nTTTT\r\n"
	var records []Record
	if err := Stream(context.Background(), strings.NewReader(input), func(r Record) error {
		records = append(records, r)
		return nil
	}); err != nil {
		t.Fatalf("Stream() error = %v", err)
	}
	if string(records[0].Seq) != "ACGTTTTT" {
		t.Errorf("Seq = %q, want ACGTTTTT", records[0].Seq)
	}
}

func TestStreamRejectsHeaderlessData(t *testing.T) {
	err := Stream(context.Background(), strings.NewReader("ACGT\n"), func(Record) error { return nil })
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestStreamCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Stream(ctx, strings.NewReader(">a\nACGT\n"), func(Record) error { return nil })
	if err != context.Canceled {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestReadContigsGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genome.fa.gz")
	fh, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gw := gzip.NewWriter(fh)
	if _, err := gw.Write([]byte(">c1\nACGT\n")); err != nil {
		t.Fatal(err)
	}
	if err := gw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := fh.Close(); err != nil {
		t.Fatal(err)
	}

	records, err := ReadContigs(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadContigs() error = %v", err)
	}
	if len(records) != 1 || string(records[0].Seq) != "ACGT" {
		t.Errorf("records = %+v", records)
	}
}

func TestReadContigsEmptyFile(t *testing.T) {
	path := writeFile(t, "empty.fa", "")
	if _, err := ReadContigs(context.Background(), path); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestReadContigsMissingFile(t *testing.T) {
	_, err := ReadContigs(context.Background(), filepath.Join(t.TempDir(), "nope.fa"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestPluckContig(t *testing.T) {
	path := writeFile(t, "genome.fa", ">chr1\nacgt\n>chr2\nttaa\n>chr3\ngggg\n")

	seq, err := PluckContig(context.Background(), path, "chr2")
	if err != nil {
		t.Fatalf("PluckContig() error = %v", err)
	}
	if string(seq) != "TTAA" {
		t.Errorf("seq = %q, want TTAA", seq)
	}

	if _, err := PluckContig(context.Background(), path, "chrZ"); !errors.Is(err, errors.ErrCodeContigNotFound) {
		t.Errorf("error = %v, want CONTIG_NOT_FOUND", err)
	}
}
