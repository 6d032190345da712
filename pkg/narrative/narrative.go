package narrative

import "time"

// Narrative is a short prose commentary on a project report, generated by a language model.
type Narrative struct {
	Id          string
	ProjectId   string
	Model       string
	Prompt      string
	Text        string
	GeneratedAt time.Time
}
