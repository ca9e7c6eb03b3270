package utils

import "github.com/microcosm-cc/bluemonday"

// Free-text meal fields (raw input, notes) come straight from parents'
// phones and end up rendered in the app; strip all markup.
var sanitizer = bluemonday.StrictPolicy()

// Sanitize removes any HTML from user-provided text.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
