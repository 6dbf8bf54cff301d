// Package telemetry provides game events, windowed statistics and CSV output.
package telemetry

import (
	"github.com/pthm-cable/chase/components"
	"github.com/pthm-cable/chase/maze"
)

// EventType identifies game events.
type EventType uint8

const (
	EventPickupEaten EventType = iota
	EventPursuerCaptured
	EventPlayerCaptured
	EventLevelCleared
	EventGameOver
)

func (t EventType) String() string {
	switch t {
	case EventPickupEaten:
		return "pickup_eaten"
	case EventPursuerCaptured:
		return "pursuer_captured"
	case EventPlayerCaptured:
		return "player_captured"
	case EventLevelCleared:
		return "level_cleared"
	case EventGameOver:
		return "game_over"
	}
	return "unknown"
}

// Event represents a single discrete game event.
type Event struct {
	Type EventType
	Tick int32
	Tile maze.Tile

	// Optional fields depending on event type
	Pickup      components.PickupKind  // for pickup events
	Personality components.Personality // for capture events
	ScoreDelta  int                    // points awarded by this event
	Chain       int                    // chain counter after a pursuer capture
	Level       int                    // level after a clear
	Lives       int                    // lives left after a player capture
	Score       int                    // total score at the time of the event
}

// NewPickupEvent creates a pickup event.
func NewPickupEvent(tick int32, tile maze.Tile, kind components.PickupKind, delta, score int) Event {
	return Event{
		Type:       EventPickupEaten,
		Tick:       tick,
		Tile:       tile,
		Pickup:     kind,
		ScoreDelta: delta,
		Score:      score,
	}
}

// NewPursuerCapturedEvent creates an event for a frightened pursuer caught by the player.
func NewPursuerCapturedEvent(tick int32, tile maze.Tile, p components.Personality, delta, chain, score int) Event {
	return Event{
		Type:        EventPursuerCaptured,
		Tick:        tick,
		Tile:        tile,
		Personality: p,
		ScoreDelta:  delta,
		Chain:       chain,
		Score:       score,
	}
}

// NewPlayerCapturedEvent creates a life-loss event.
func NewPlayerCapturedEvent(tick int32, tile maze.Tile, p components.Personality, lives, score int) Event {
	return Event{
		Type:        EventPlayerCaptured,
		Tick:        tick,
		Tile:        tile,
		Personality: p,
		Lives:       lives,
		Score:       score,
	}
}

// NewLevelClearedEvent creates a level-clear event. level is the new level.
func NewLevelClearedEvent(tick int32, level, score int) Event {
	return Event{
		Type:  EventLevelCleared,
		Tick:  tick,
		Level: level,
		Score: score,
	}
}

// NewGameOverEvent creates the terminal game-over event.
func NewGameOverEvent(tick int32, level, score int) Event {
	return Event{
		Type:  EventGameOver,
		Tick:  tick,
		Level: level,
		Score: score,
	}
}

// EventRecord is a flat struct for CSV export of events.
type EventRecord struct {
	Tick        int32  `csv:"tick"`
	Type        string `csv:"type"`
	Col         int    `csv:"col"`
	Row         int    `csv:"row"`
	Pickup      string `csv:"pickup"`
	Personality string `csv:"personality"`
	ScoreDelta  int    `csv:"score_delta"`
	Chain       int    `csv:"chain"`
	Level       int    `csv:"level"`
	Lives       int    `csv:"lives"`
	Score       int    `csv:"score"`
}

// ToCSV converts an Event to its CSV record.
func (e Event) ToCSV() EventRecord {
	rec := EventRecord{
		Tick:       e.Tick,
		Type:       e.Type.String(),
		Col:        e.Tile.C,
		Row:        e.Tile.R,
		ScoreDelta: e.ScoreDelta,
		Chain:      e.Chain,
		Level:      e.Level,
		Lives:      e.Lives,
		Score:      e.Score,
	}
	if e.Type == EventPickupEaten {
		rec.Pickup = e.Pickup.String()
	}
	if e.Type == EventPursuerCaptured || e.Type == EventPlayerCaptured {
		rec.Personality = e.Personality.String()
	}
	return rec
}
