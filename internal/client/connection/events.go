package connection

import "github.com/yourusername/wschat/internal/client/messagelog"

// Event represents events from the connection manager
type Event interface {
	isEvent()
}

// EntryAppendedEvent is sent after an entry was added to the transcript
type EntryAppendedEvent struct {
	Entry messagelog.Entry
}

func (EntryAppendedEvent) isEvent() {}

// StatusChangedEvent is sent when the derived status may have changed
type StatusChangedEvent struct {
	Status Status
}

func (StatusChangedEvent) isEvent() {}
