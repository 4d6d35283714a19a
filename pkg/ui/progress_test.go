package ui_test

import (
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"

	"github.com/gdlinux/geode-installer/pkg/download"
	"github.com/gdlinux/geode-installer/pkg/errors"
	"github.com/gdlinux/geode-installer/pkg/ui"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
		{3 << 30, "3.0 GiB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ui.FormatBytes(tt.in))
		})
	}
}

func TestProgressFactory(t *testing.T) {
	assert.IsType(t, download.NopProgress{}, ui.ProgressFactory("Downloading", false)())
	assert.IsType(t, &ui.DownloadProgress{}, ui.ProgressFactory("Downloading", true)())
}

func TestDownloadProgress_Lifecycle(t *testing.T) {
	pterm.DisableOutput()
	t.Cleanup(pterm.EnableOutput)

	t.Run("known size", func(t *testing.T) {
		p := ui.NewDownloadProgress("Downloading Geode")
		p.Start(2048)
		p.Add(1024)
		p.Add(1024)
		p.Finish(nil)
	})

	t.Run("unknown size", func(t *testing.T) {
		p := ui.NewDownloadProgress("Downloading Geode")
		p.Start(download.UnknownLength)
		p.Add(100)
		p.Finish(errors.New(errors.ErrDownload, "boom"))
	})

	t.Run("finish without start", func(t *testing.T) {
		ui.NewDownloadProgress("Downloading Geode").Finish(nil)
	})
}
