package ui

import (
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/flat-launcher/internal/history"
	"github.com/ytget/flat-launcher/internal/model"
)

// HistoryList renders recent launch records
type HistoryList struct {
	localization *Localization
	records      []history.Record
	list         *widget.List
	empty        *widget.Label
	container    *fyne.Container
}

// NewHistoryList creates an empty history list
func NewHistoryList(localization *Localization) *HistoryList {
	h := &HistoryList{localization: localization}

	h.list = widget.NewList(
		func() int {
			return len(h.records)
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(h.records) {
				return
			}
			obj.(*widget.Label).SetText(FormatRecord(h.records[id], time.Now()))
		},
	)
	h.empty = widget.NewLabel(localization.GetText(KeyNoLaunches))
	h.empty.Importance = widget.LowImportance
	h.container = container.NewStack(h.list, h.empty)
	h.list.Hide()
	return h
}

// Container returns the list's root object
func (h *HistoryList) Container() fyne.CanvasObject {
	return h.container
}

// SetRecords replaces the displayed records
func (h *HistoryList) SetRecords(records []history.Record) {
	h.records = records
	if len(records) == 0 {
		h.list.Hide()
		h.empty.Show()
	} else {
		h.empty.Hide()
		h.list.Show()
	}
	h.list.Refresh()
}

// Len returns the number of displayed records
func (h *HistoryList) Len() int {
	return len(h.records)
}

// FormatRecord renders one record as "1.20.1 · Steve · Exited (1) · 5m ago"
func FormatRecord(r history.Record, now time.Time) string {
	username := r.Username
	if strings.TrimSpace(username) == "" {
		username = DashPlaceholder
	}

	status := r.Status.String()
	if r.Status == model.LaunchStatusExited {
		status = fmt.Sprintf("%s (%d)", status, r.ExitCode)
	}

	parts := []string{r.VersionID, username, status, formatAge(now.Sub(r.StartedAt))}
	return strings.Join(parts, MiddleDotSeparator)
}

// formatAge renders a duration as a coarse "ago" string
func formatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
