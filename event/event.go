// Package event defines the messages that carry edits from the tiling
// maker through the prototype and mosaic coordinators.
package event

import (
	"fmt"

	"github.com/gogpu/girih/prototype"
	"github.com/gogpu/girih/tile"
	"github.com/gogpu/girih/tiling"
)

// Type identifies an event.
type Type int

const (
	// LoadEmpty clears every prototype.
	LoadEmpty Type = iota
	// LoadSingle builds a new prototype for the tiling.
	LoadSingle
	// ReloadSingle swaps the tiling of the current prototype.
	ReloadSingle
	// LoadMulti adds a prototype alongside the existing ones.
	LoadMulti
	// ReloadMulti reloads one of several prototypes; a Choice is required.
	ReloadMulti
	// TileEdgesChanged reports a tile shape edit.
	TileEdgesChanged
	// MotifChanged reports a motif parameter edit.
	MotifChanged
	// TilingChanged reports placements, vectors or the fill window
	// changing.
	TilingChanged
	// Render asks for the mosaic to be brought up to date.
	Render
)

var typeNames = [...]string{
	LoadEmpty:        "LOAD_EMPTY",
	LoadSingle:       "LOAD_SINGLE",
	ReloadSingle:     "RELOAD_SINGLE",
	LoadMulti:        "LOAD_MULTI",
	ReloadMulti:      "RELOAD_MULTI",
	TileEdgesChanged: "TILE_EDGES_CHANGED",
	MotifChanged:     "MOTIF_CHANGED",
	TilingChanged:    "TILING_CHANGED",
	Render:           "RENDER",
}

// String returns the event name.
func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Choice is the user's answer when a reload is ambiguous.
type Choice int

const (
	// ChoiceNone means no choice was made.
	ChoiceNone Choice = iota
	// ChoiceReplaceTiling swaps the tiling inside the selected prototype.
	ChoiceReplaceTiling
	// ChoiceCreatePrototype builds an additional prototype.
	ChoiceCreatePrototype
)

// String returns the choice name.
func (c Choice) String() string {
	switch c {
	case ChoiceNone:
		return "none"
	case ChoiceReplaceTiling:
		return "replace-tiling"
	case ChoiceCreatePrototype:
		return "create-prototype"
	}
	return fmt.Sprintf("Choice(%d)", int(c))
}

// Event carries one edit. Only the fields relevant to Type are set.
type Event struct {
	Type   Type
	Tiling *tiling.Tiling
	// Tile is the arena tile for TileEdgesChanged and MotifChanged.
	Tile tile.ID
	// Prototypes lists the prototypes affected, filled in by the
	// prototype coordinator before forwarding.
	Prototypes []*prototype.Prototype
	Choice     Choice
}

// String describes the event for logs.
func (e Event) String() string {
	name := ""
	if e.Tiling != nil {
		name = e.Tiling.Name()
	}
	return fmt.Sprintf("%s{tiling=%q tile=%d prototypes=%d choice=%s}",
		e.Type, name, e.Tile, len(e.Prototypes), e.Choice)
}

// Sink receives events. A non-nil error rejects the edit the event
// announces.
type Sink func(Event) error

// Discard is a Sink that drops every event.
func Discard(Event) error { return nil }
