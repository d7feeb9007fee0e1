package binfile

import (
	"github.com/schollz/progressbar/v3"
	"io"
)

// Progress tracks payload-copy bytes during the streaming rewrite.
type Progress interface {
	io.Writer
	Add(num int)
	Close() error
}

// ProgressWriter constructs a Progress tracker for a run. total is the
// payload size in bytes, or -1 when it is not known up front (main.go
// always passes -1, since the input is a stream).
type ProgressWriter interface {
	NewBytesProgress(total int64, description string) Progress
}

// defaultProgressWriter backs Progress with a schollz/progressbar meter
// written to stderr.
type defaultProgressWriter struct{}

// NewDefaultProgressWriter returns the progress-bar-backed ProgressWriter.
func NewDefaultProgressWriter() ProgressWriter { return &defaultProgressWriter{} }

func (d *defaultProgressWriter) NewBytesProgress(total int64, description string) Progress {
	return &progressBarWrapper{bar: progressbar.DefaultBytes(total, description)}
}

type progressBarWrapper struct {
	bar *progressbar.ProgressBar
}

func (p *progressBarWrapper) Write(data []byte) (int, error) {
	return p.bar.Write(data)
}

func (p *progressBarWrapper) Add(num int) {
	p.bar.Add(num)
}

func (p *progressBarWrapper) Close() error {
	return p.bar.Close()
}

// quietProgressWriter implements ProgressWriter with a no-op Progress, for
// -quiet runs.
type quietProgressWriter struct{}

// NewQuietProgressWriter returns a ProgressWriter whose trackers do nothing.
func NewQuietProgressWriter() ProgressWriter { return &quietProgressWriter{} }

func (q *quietProgressWriter) NewBytesProgress(total int64, description string) Progress {
	return quietProgress{}
}

type quietProgress struct{}

func (quietProgress) Write(data []byte) (int, error) { return len(data), nil }
func (quietProgress) Add(num int)                    {}
func (quietProgress) Close() error                   { return nil }
