// Package archive keeps zstd-compressed copies of processed input files.
package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"perishables/internal/core/apperror"
	appctx "perishables/internal/core/context"
	"perishables/internal/core/id"
	"perishables/pkg/logger"
)

// Extension is appended to every archived file.
const Extension = ".zst"

// Archiver copies inputs into Dir. A zero Archiver (empty Dir) does nothing.
type Archiver struct {
	Dir   string
	Level zstd.EncoderLevel
}

// New creates an Archiver writing into dir with the default zstd level.
func New(dir string) *Archiver {
	return &Archiver{Dir: dir, Level: zstd.SpeedDefault}
}

// Enabled reports whether archiving is configured.
func (a *Archiver) Enabled() bool {
	return a != nil && a.Dir != ""
}

// Archive compresses src into Dir as <base>.<run id>.zst and returns the
// archive path. The run id comes from ctx; a fresh one is generated if absent.
func (a *Archiver) Archive(ctx context.Context, src string) (string, error) {
	if !a.Enabled() {
		return "", nil
	}
	if err := os.MkdirAll(a.Dir, 0o755); err != nil {
		return "", apperror.NewIO("mkdir", a.Dir, err)
	}

	runID := appctx.GetRunID(ctx)
	if id.IsNil(runID) {
		runID = id.New()
	}
	dst := filepath.Join(a.Dir, fmt.Sprintf("%s.%s%s", filepath.Base(src), runID, Extension))

	in, err := os.Open(src)
	if err != nil {
		return "", apperror.NewIO("open", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", apperror.NewIO("create", dst, err)
	}

	n, err := a.compress(out, in)
	if closeErr := out.Close(); err == nil && closeErr != nil {
		err = apperror.NewIO("close", dst, closeErr)
	}
	if err != nil {
		// no partial archives
		os.Remove(dst)
		return "", err
	}

	logger.Info(ctx, "input archived", "src", src, "dst", dst, "bytes", n)
	return dst, nil
}

func (a *Archiver) compress(w io.Writer, src *os.File) (int64, error) {
	level := a.Level
	if level == 0 {
		level = zstd.SpeedDefault
	}
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(level))
	if err != nil {
		return 0, fmt.Errorf("create zstd encoder: %w", err)
	}

	n, err := io.Copy(enc, src)
	if err != nil {
		enc.Close()
		return n, apperror.NewIO("compress", src.Name(), err)
	}
	if err := enc.Close(); err != nil {
		return n, apperror.NewIO("compress", src.Name(), err)
	}
	return n, nil
}

// Restore decompresses an archive produced by Archive into w.
func Restore(path string, w io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return apperror.NewIO("open", path, err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return fmt.Errorf("create zstd decoder: %w", err)
	}
	defer dec.Close()

	if _, err := io.Copy(w, dec); err != nil {
		return apperror.NewIO("decompress", path, err)
	}
	return nil
}
