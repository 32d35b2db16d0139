package assistant

import "regexp"

var urlPattern = regexp.MustCompile(`https?://[^\s]+`)

// Segment is a run of reply text; Href is set when the run is a link.
type Segment struct {
	Text string `json:"text"`
	Href string `json:"href,omitempty"`
}

// Segments splits text so URLs can be rendered as clickable links.
func Segments(text string) []Segment {
	var out []Segment
	last := 0
	for _, loc := range urlPattern.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			out = append(out, Segment{Text: text[last:loc[0]]})
		}
		u := text[loc[0]:loc[1]]
		out = append(out, Segment{Text: u, Href: u})
		last = loc[1]
	}
	if last < len(text) {
		out = append(out, Segment{Text: text[last:]})
	}
	return out
}
