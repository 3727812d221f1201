package main

import (
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/mattn/go-isatty"
)

// progressBar wraps a go-pretty progress writer for the translate
// command. It only renders on interactive terminals; piped output gets
// log lines instead.
type progressBar struct {
	writer  progress.Writer
	tracker *progress.Tracker
}

func newProgressBar(total int) *progressBar {
	if !isTerminal(os.Stderr) {
		return nil
	}

	pw := progress.NewWriter()
	pw.SetOutputWriter(os.Stderr)
	pw.SetTrackerLength(25)
	pw.SetUpdateFrequency(100 * time.Millisecond)
	pw.SetStyle(progress.StyleDefault)
	pw.Style().Visibility.ETA = true

	tracker := &progress.Tracker{
		Message: "Translating",
		Total:   int64(total),
		Units:   progress.UnitsDefault,
	}
	pw.AppendTracker(tracker)
	go pw.Render()

	return &progressBar{writer: pw, tracker: tracker}
}

func (p *progressBar) update(done, total int) {
	p.tracker.SetValue(int64(done))
}

func (p *progressBar) stop() {
	p.tracker.MarkAsDone()
	p.writer.Stop()
	for p.writer.IsRenderInProgress() {
		time.Sleep(10 * time.Millisecond)
	}
}

func isTerminal(file *os.File) bool {
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
