package model

import "time"

// OutputEntry is a single line of the console output log
type OutputEntry struct {
	Timestamp time.Time
	Text      string
}

// Format renders the entry the way the console displays it
func (e OutputEntry) Format() string {
	return e.Timestamp.Format("15:04:05") + " " + e.Text
}
