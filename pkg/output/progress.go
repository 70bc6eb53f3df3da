package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/term"

	"github.com/sdejongh/vidupe/pkg/models"
)

const barTemplate = `{{string . "phase"}} {{counters . }} {{bar . }} {{percent . }} {{etime . }}`

// ProgressSink consumes scan progress events until the channel is closed
type ProgressSink interface {
	Consume(events <-chan models.ProgressUpdate)
}

// IsTerminal reports whether w is an interactive terminal
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// NewProgressSink returns a progress bar for terminals and plain lines otherwise
func NewProgressSink(w io.Writer) ProgressSink {
	if w == nil {
		w = os.Stderr
	}
	if IsTerminal(w) {
		return NewProgressBar(w)
	}
	return NewProgressLog(w)
}

// ProgressBar renders scan phases as a pb progress bar
type ProgressBar struct {
	writer io.Writer
	mu     sync.Mutex
	bar    *pb.ProgressBar
}

// NewProgressBar creates a new progress bar formatter
func NewProgressBar(w io.Writer) *ProgressBar {
	return &ProgressBar{writer: w}
}

// Consume drives the bar from events; one bar is drawn per phase
func (f *ProgressBar) Consume(events <-chan models.ProgressUpdate) {
	for ev := range events {
		f.handle(ev)
	}
	f.finish()
}

func (f *ProgressBar) handle(ev models.ProgressUpdate) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch ev.Type {
	case models.ProgressPhase:
		f.finishLocked()
		f.bar = pb.ProgressBarTemplate(barTemplate).New(ev.Total)
		f.bar.SetWriter(f.writer)
		f.bar.Set("phase", fmt.Sprintf("%-6s", ev.Phase))
		f.bar.Start()

	case models.ProgressFolderDone:
		if f.bar == nil {
			return
		}
		if ev.Total > 0 {
			f.bar.SetTotal(int64(ev.Total))
		}
		f.bar.SetCurrent(int64(ev.Current))

	case models.ProgressScanComplete:
		f.finishLocked()
	}
}

func (f *ProgressBar) finish() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finishLocked()
}

func (f *ProgressBar) finishLocked() {
	if f.bar != nil {
		f.bar.Finish()
		f.bar = nil
	}
}

// ProgressLog writes one line per event, for pipes and log captures
type ProgressLog struct {
	writer io.Writer
}

// NewProgressLog creates a line-oriented progress formatter
func NewProgressLog(w io.Writer) *ProgressLog {
	return &ProgressLog{writer: w}
}

// Consume prints events until the channel is closed
func (f *ProgressLog) Consume(events <-chan models.ProgressUpdate) {
	for ev := range events {
		switch ev.Type {
		case models.ProgressPhase:
			fmt.Fprintf(f.writer, "== %s\n", ev.Phase)
		case models.ProgressFolderDone:
			fmt.Fprintf(f.writer, "[%d/%d] %s\n", ev.Current, ev.Total, ev.Path)
		case models.ProgressScanComplete:
			fmt.Fprintf(f.writer, "== done\n")
		}
	}
}
