package services

import "github.com/microcosm-cc/bluemonday"

// richTextPolicy allows user-generated formatting in free-text fields while
// stripping scripts and event handlers.
var richTextPolicy = bluemonday.UGCPolicy()

// SanitizeRichText cleans attacker-controllable HTML from free-text fields
// (case overview, client notes, document remarks, task details).
func SanitizeRichText(input string) string {
	return richTextPolicy.Sanitize(input)
}
