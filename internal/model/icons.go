package model

// Icons used by the detection console.
// Using simple single-width characters for consistent terminal rendering
const (
	IconCursor  = "▸" // Current line
	IconBlocked = "✗" // Character is on the blocklist
	IconStop    = "¶" // Stop character marker
	IconNone    = "∅" // No stop character on this line
)
