package logutil

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

const (
	maxSizeBytes = 5 * 1024 * 1024 // 5 MB
	maxArchives  = 3
	logPrefix    = "desktop-raise: "
)

// Options selects where log output goes.
type Options struct {
	Verbose bool   // log to stderr
	File    string // also log to this file, rotated by size
}

// Setup builds the logger used by the raise routine and its background
// tasks. With neither option set, logs are discarded to keep command output
// clean. The returned closer releases the log file, if any.
func Setup(opts Options) (*log.Logger, io.Closer, error) {
	var writers []io.Writer
	if opts.Verbose {
		writers = append(writers, os.Stderr)
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		rw, err := newRotatingWriter(opts.File)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, rw)
		closer = rw
	}

	var out io.Writer
	switch len(writers) {
	case 0:
		out = io.Discard
	case 1:
		out = writers[0]
	default:
		out = io.MultiWriter(writers...)
	}
	return log.New(out, logPrefix, log.LstdFlags|log.Lmsgprefix), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// rotatingWriter appends to path and rotates it to path.1..path.N once it
// would grow past maxSizeBytes. Background tasks log concurrently, so writes
// are serialized.
type rotatingWriter struct {
	mu   sync.Mutex
	path string
	f    *os.File
}

func newRotatingWriter(path string) (*rotatingWriter, error) {
	rotateIfNeeded(path, 0)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &rotatingWriter{path: path, f: f}, nil
}

func (w *rotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if st, err := w.f.Stat(); err == nil && st.Size()+int64(len(p)) > maxSizeBytes {
		_ = w.f.Close()
		rotateIfNeeded(w.path, int64(len(p)))
		nf, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return 0, err
		}
		w.f = nf
	}
	return w.f.Write(p)
}

func (w *rotatingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.f.Close()
}

func rotateIfNeeded(path string, incoming int64) {
	st, err := os.Stat(path)
	if err != nil || st.Size()+incoming <= maxSizeBytes {
		return
	}
	_ = os.Remove(archiveName(path, maxArchives))
	for i := maxArchives - 1; i >= 1; i-- {
		_ = os.Rename(archiveName(path, i), archiveName(path, i+1))
	}
	_ = os.Rename(path, archiveName(path, 1))
}

func archiveName(path string, n int) string { return fmt.Sprintf("%s.%d", path, n) }
