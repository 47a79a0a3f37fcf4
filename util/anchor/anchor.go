// Package anchor implements a thin terminal reporter
// which keeps a set of named status lines (lots) anchored
// at the bottom of the screen while regular log lines
// scroll above them.
package anchor

import (
	"fmt"
	"io"
	"sync"

	"atomicgo.dev/cursor"
	"github.com/fatih/color"
)

var (
	Red    = color.FgRed
	Green  = color.FgGreen
	Yellow = color.FgYellow
	Cyan   = color.FgCyan
)

type Anchor struct {
	mutex  sync.Mutex
	writer io.Writer
	color  *color.Color
	lots   []*Lot
}

type Lot struct {
	anchor *Anchor
	name   string
	status string
	closed bool
}

func New(attributes ...color.Attribute) *Anchor {
	return &Anchor{
		writer: color.Output,
		color:  color.New(attributes...),
	}
}

// Printf prints a scrolling line above the anchored lots
func (anchor *Anchor) Printf(format string, args ...interface{}) {
	anchor.mutex.Lock()
	defer anchor.mutex.Unlock()

	anchor.erase()
	fmt.Fprintf(anchor.writer, format+"\n", args...)
	anchor.draw()
}

// AnchorPrintf behaves as Printf, but colors
// the message with the anchor accent color
func (anchor *Anchor) AnchorPrintf(format string, args ...interface{}) {
	anchor.Printf("%s", anchor.color.Sprintf(format, args...))
}

// Lot returns the status line going by the given
// name, registering a new one if none matches
func (anchor *Anchor) Lot(name string) *Lot {
	anchor.mutex.Lock()
	defer anchor.mutex.Unlock()

	for _, lot := range anchor.lots {
		if lot.name == name {
			return lot
		}
	}

	lot := &Lot{anchor: anchor, name: name}
	anchor.erase()
	anchor.lots = append(anchor.lots, lot)
	anchor.draw()
	return lot
}

// Wipe unregisters every lot, leaving
// only the scrolled lines behind
func (anchor *Anchor) Wipe() {
	anchor.mutex.Lock()
	defer anchor.mutex.Unlock()

	anchor.erase()
	anchor.lots = nil
}

// erase clears the anchored area: it must
// be called with the anchor lock held
func (anchor *Anchor) erase() {
	if len(anchor.lots) > 0 {
		cursor.ClearLinesUp(len(anchor.lots))
		cursor.StartOfLine()
	}
}

// draw renders the anchored area: it must
// be called with the anchor lock held
func (anchor *Anchor) draw() {
	for _, lot := range anchor.lots {
		status := lot.status
		if lot.closed {
			status = anchor.color.Sprint(lot.status)
		}
		fmt.Fprintf(anchor.writer, "%s: %s\n", lot.name, status)
	}
}

func (lot *Lot) Print(args ...interface{}) {
	lot.update(fmt.Sprint(args...))
}

func (lot *Lot) Printf(format string, args ...interface{}) {
	lot.update(fmt.Sprintf(format, args...))
}

// Wipe resets the lot status without unregistering it
func (lot *Lot) Wipe() {
	lot.update("")
}

// Close marks the lot as done, using the
// given label (if any) as final status
func (lot *Lot) Close(labels ...string) {
	status := "done"
	if len(labels) > 0 {
		status = labels[0]
	}

	lot.anchor.mutex.Lock()
	defer lot.anchor.mutex.Unlock()
	lot.anchor.erase()
	lot.status = status
	lot.closed = true
	lot.anchor.draw()
}

func (lot *Lot) update(status string) {
	lot.anchor.mutex.Lock()
	defer lot.anchor.mutex.Unlock()
	lot.anchor.erase()
	lot.status = status
	lot.anchor.draw()
}
