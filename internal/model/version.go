package model

import "fmt"

// Version represents a single runtime release known to the app
type Version struct {
	TagName string // normalized, without the leading "v"
	State   InstallState
}

// Label returns the version formatted for display, with the install state
// appended when it is anything other than unknown
func (v Version) Label() string {
	if v.State == "" || v.State == StateUnknown {
		return "v" + v.TagName
	}
	return fmt.Sprintf("v%s (%s)", v.TagName, v.State)
}
