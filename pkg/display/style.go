package display

import _ "embed"

// StylesheetName is the file name the stylesheet is published under.
const StylesheetName = "gh-repo-list.css"

//go:embed gh-repo-list.css
var stylesheet []byte

// Stylesheet returns the CSS for the gh-repo-list markup.
func Stylesheet() []byte {
	return stylesheet
}
