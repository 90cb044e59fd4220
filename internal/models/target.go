package models

import "time"

// Target is a reference endpoint with a known approximate location
type Target struct {
	Ordinal  int               `json:"ordinal" mapstructure:"-"`
	Name     string            `json:"name" mapstructure:"name"`
	Address  string            `json:"address" mapstructure:"address"`
	Location string            `json:"location" mapstructure:"location"`
	Labels   map[string]string `json:"labels,omitempty" mapstructure:"labels"`
}

// LocationFor returns the location label for a base language such as "ru",
// falling back to the default label
func (t Target) LocationFor(lang string) string {
	if label, ok := t.Labels[lang]; ok && label != "" {
		return label
	}
	return t.Location
}

// Run is one completed probing pass over the catalog
type Run struct {
	ID         string        `json:"id"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration_ns"`
	ProbeCount int           `json:"probe_count"`
	Results    ResultsTable  `json:"results"`
}
