package view

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/Isle-Sim/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const (
	logPanelWidth = 300
	logMaxEntries = 60
	logLineHeight = 14
)

// EventEntry is a single line in the event panel.
type EventEntry struct {
	Tick    int
	Label   string // e.g. "A1", or "--" for world events
	Message string
}

// EventLog is a ring buffer of recent world events rendered on-screen. It
// tails the world's SimLog.
type EventLog struct {
	entries []EventEntry
	head    int
	count   int

	seen int // SimLog entries already copied
}

// NewEventLog creates an event log with a fixed capacity.
func NewEventLog() *EventLog {
	return &EventLog{
		entries: make([]EventEntry, logMaxEntries),
	}
}

// Add appends an entry to the log.
func (el *EventLog) Add(tick int, label, msg string) {
	el.entries[el.head] = EventEntry{Tick: tick, Label: label, Message: msg}
	el.head = (el.head + 1) % logMaxEntries
	if el.count < logMaxEntries {
		el.count++
	}
}

// Sync copies SimLog entries recorded since the previous call.
func (el *EventLog) Sync(sl *game.SimLog) {
	all := sl.Entries()
	for _, e := range all[el.seen:] {
		el.Add(e.Tick, e.Actor, fmt.Sprintf("%s %s %s", e.Category, e.Key, e.Value))
	}
	el.seen = len(all)
}

// Recent returns entries in chronological order (oldest first).
func (el *EventLog) Recent() []EventEntry {
	result := make([]EventEntry, el.count)
	for i := 0; i < el.count; i++ {
		idx := (el.head - el.count + i + logMaxEntries) % logMaxEntries
		result[i] = el.entries[idx]
	}
	return result
}

// Draw renders the event panel at panelX.
func (el *EventLog) Draw(screen *ebiten.Image, panelX, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, logPanelWidth, float32(panelH), color.RGBA{R: 10, G: 12, B: 16, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 60, B: 80, A: 255}, false)
	text.Draw(screen, "EVENTS", basicfont.Face7x13, panelX+8, 14, color.RGBA{R: 200, G: 210, B: 230, A: 255})

	entries := el.Recent()
	// Newest at the bottom.
	y := panelH - 6
	for i := len(entries) - 1; i >= 0 && y > 2*logLineHeight; i-- {
		e := entries[i]
		line := fmt.Sprintf("%04d %-3s %s", e.Tick, e.Label, e.Message)
		if limit := (logPanelWidth - 12) / 7; len(line) > limit {
			line = line[:limit]
		}
		text.Draw(screen, line, basicfont.Face7x13, panelX+6, y, color.RGBA{R: 170, G: 180, B: 190, A: 255})
		y -= logLineHeight
	}
}
