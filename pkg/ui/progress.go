package ui

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/gdlinux/geode-installer/pkg/download"
)

// DownloadProgress reports a download with a pterm progress bar when the
// size is known and a spinner otherwise.
type DownloadProgress struct {
	title   string
	done    int64
	bar     *pterm.ProgressbarPrinter
	spinner *pterm.SpinnerPrinter
}

var _ download.Progress = (*DownloadProgress)(nil)

func NewDownloadProgress(title string) *DownloadProgress {
	return &DownloadProgress{title: title}
}

// ProgressFactory returns a constructor suitable for installer.WithProgress.
// When interactive is false downloads are reported silently.
func ProgressFactory(title string, interactive bool) func() download.Progress {
	if !interactive {
		return func() download.Progress { return download.NopProgress{} }
	}
	return func() download.Progress { return NewDownloadProgress(title) }
}

func (p *DownloadProgress) Start(total int64) {
	p.done = 0
	if total > 0 {
		bar, err := pterm.DefaultProgressbar.
			WithTotal(int(total)).
			WithTitle(p.title).
			WithShowCount(false).
			WithRemoveWhenDone(true).
			Start()
		if err == nil {
			p.bar = bar
			return
		}
	}

	spinner, err := pterm.DefaultSpinner.Start(p.title)
	if err == nil {
		p.spinner = spinner
	}
}

func (p *DownloadProgress) Add(n int64) {
	p.done += n
	switch {
	case p.bar != nil:
		p.bar.Add(int(n))
	case p.spinner != nil:
		p.spinner.UpdateText(fmt.Sprintf("%s (%s)", p.title, FormatBytes(p.done)))
	}
}

func (p *DownloadProgress) Finish(err error) {
	switch {
	case p.bar != nil:
		_, _ = p.bar.Stop()
		if err == nil {
			pterm.Success.Printfln("%s (%s)", p.title, FormatBytes(p.done))
		} else {
			pterm.Error.Printfln("%s failed", p.title)
		}
	case p.spinner != nil:
		if err == nil {
			p.spinner.Success(fmt.Sprintf("%s (%s)", p.title, FormatBytes(p.done)))
		} else {
			p.spinner.Fail(fmt.Sprintf("%s failed", p.title))
		}
	}
	p.bar = nil
	p.spinner = nil
}

// FormatBytes renders n using binary units, e.g. "1.5 MiB".
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
