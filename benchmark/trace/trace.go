// Package trace loads, writes, and synthesizes the key traces the
// benchmark replays.
//
// A trace is a plain text file with one key per line; blank lines and lines
// starting with '#' are skipped. Files ending in .zst or .gz are compressed
// with zstd or gzip and handled transparently on both read and write.
// Traces can be loaded from a local path, a gs:// object, or an s3:// object.
package trace

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// maxLineBytes bounds a single trace line; keys are expected to be short.
const maxLineBytes = 1 << 20

// Read parses trace keys from r.
func Read(r io.Reader) ([]string, error) {
	var keys []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		keys = append(keys, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}

	return keys, nil
}

// Open reads a trace from a local file, decompressing by extension.
func Open(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trace: %w", err)
	}
	defer f.Close()

	dec, err := decompressor(path, f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	return Read(dec)
}

// Load reads a trace from ref: a local path, gs://bucket/object, or
// s3://bucket/key.
func Load(ctx context.Context, ref string) ([]string, error) {
	source, err := Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer source.Close()

	rc, err := source.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	dec, err := decompressor(source.Ref(), rc)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	return Read(dec)
}

// Write emits keys to w, one per line.
func Write(w io.Writer, keys []string) error {
	bw := bufio.NewWriter(w)
	for _, key := range keys {
		if _, err := bw.WriteString(key); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	return nil
}

// WriteFile writes keys to path, compressing by extension.
func WriteFile(path string, keys []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating trace file: %w", err)
	}

	comp, err := compressor(path, f)
	if err != nil {
		f.Close()
		return err
	}

	if err := Write(comp, keys); err != nil {
		comp.Close()
		f.Close()
		return err
	}

	// Close the compressor first so it flushes its trailer.
	if err := comp.Close(); err != nil {
		f.Close()
		return fmt.Errorf("flushing trace file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing trace file: %w", err)
	}
	return nil
}

// decompressor wraps r according to the extension of name.
func decompressor(name string, r io.Reader) (io.ReadCloser, error) {
	switch {
	case strings.HasSuffix(name, ".zst"):
		decoder, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("creating zstd reader: %w", err)
		}
		return decoder.IOReadCloser(), nil
	case strings.HasSuffix(name, ".gz"):
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("creating gzip reader: %w", err)
		}
		return gz, nil
	default:
		return io.NopCloser(r), nil
	}
}

// compressor wraps w according to the extension of name.
func compressor(name string, w io.Writer) (io.WriteCloser, error) {
	switch {
	case strings.HasSuffix(name, ".zst"):
		encoder, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("creating zstd writer: %w", err)
		}
		return encoder, nil
	case strings.HasSuffix(name, ".gz"):
		return gzip.NewWriter(w), nil
	default:
		return nopWriteCloser{w}, nil
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
