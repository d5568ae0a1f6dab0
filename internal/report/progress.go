package report

import (
	"fmt"
	"io"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// Progress draws a bar for answers scored so far. The total is only known
// once the documents are parsed, so the bar is created on the first update.
type Progress struct {
	w     io.Writer
	color bool

	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

// NewProgress returns a Progress writing to w.
func NewProgress(w io.Writer, useColor bool) *Progress {
	return &Progress{w: w, color: useColor}
}

// Update records that completed of total answers are scored. Its signature
// matches grading.ProgressFunc.
func (p *Progress) Update(completed, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar == nil {
		description := "Scoring answers"
		if p.color {
			description = "[cyan]" + description + "[reset]"
		}
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(p.w),
			progressbar.OptionSetDescription(description),
			progressbar.OptionEnableColorCodes(p.color),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(30),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionSetRenderBlankState(true),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
	}
	_ = p.bar.Set(completed)
}

// Finish completes the bar and ends its line. It does nothing when no
// answer was scored.
func (p *Progress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
	_, _ = fmt.Fprintln(p.w)
	p.bar = nil
}
