package agenda

import "time"

// Spec describes the agenda to draft for one check-in page.
type Spec struct {
	Topic    string
	TeamName string
	Date     time.Time
	Index    int
}

// Draft is the model output (markdown).
type Draft struct {
	Markdown string
}
