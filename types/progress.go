package types

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gosuri/uilive"
)

// StatusLine holds the latest status of one run, safe for concurrent use
type StatusLine struct {
	mu        sync.Mutex
	printable string
}

func NewStatusLine() *StatusLine {
	return &StatusLine{}
}

// Set the status (blocking)
func (l *StatusLine) Set(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.printable = s
}

// TrySet sets the status unless the line is being read
func (l *StatusLine) TrySet(s string) bool {
	if !l.mu.TryLock() {
		return false
	}
	defer l.mu.Unlock()
	l.printable = s
	return true
}

func (l *StatusLine) Get() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.printable
}

// TerminalPrinter redraws one terminal line per run at a fixed interval
type TerminalPrinter struct {
	lines     []*StatusLine
	ctx       context.Context
	cancel    context.CancelFunc
	frequency time.Duration
	done      chan struct{}

	writer  *uilive.Writer
	writers []io.Writer
}

func NewTerminalPrinter(ctx context.Context, lines []*StatusLine, frequency time.Duration) *TerminalPrinter {
	return newTerminalPrinter(ctx, lines, frequency, nil)
}

func newTerminalPrinter(ctx context.Context, lines []*StatusLine, frequency time.Duration, out io.Writer) *TerminalPrinter {
	printerCtx, cancel := context.WithCancel(ctx)
	writer := uilive.New()
	if out != nil {
		writer.Out = out
	}
	writers := make([]io.Writer, 0, len(lines))
	for i := 1; i < len(lines); i++ {
		writers = append(writers, writer.Newline())
	}
	return &TerminalPrinter{
		lines:     lines,
		ctx:       printerCtx,
		cancel:    cancel,
		frequency: frequency,
		done:      make(chan struct{}),
		writer:    writer,
		writers:   writers,
	}
}

func (p *TerminalPrinter) Start() {
	go func() {
		defer close(p.done)
		ticker := time.NewTicker(p.frequency)
		defer ticker.Stop()
		for {
			select {
			case <-p.ctx.Done():
				p.print()
				return
			case <-ticker.C:
				p.print()
			}
		}
	}()
}

// Stop prints the final status of every line and waits for the printer to exit
func (p *TerminalPrinter) Stop() {
	p.cancel()
	<-p.done
}

func (p *TerminalPrinter) print() {
	for i, line := range p.lines {
		s := line.Get()
		if s == "" {
			continue
		}
		if i == 0 {
			fmt.Fprint(p.writer, s+"\n")
		} else {
			fmt.Fprint(p.writers[i-1], s+"\n")
		}
	}
	p.writer.Flush()
}
