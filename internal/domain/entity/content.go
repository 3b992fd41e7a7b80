package entity

// ContentItem is a single piece of advice. Items are immutable once loaded.
type ContentItem struct {
	ID    string `yaml:"id" json:"id"`
	Text  string `yaml:"text" json:"text"`
	Query string `yaml:"query,omitempty" json:"query,omitempty"`
}

// Section groups items under a title
type Section struct {
	ID    string        `yaml:"id" json:"id"`
	Title string        `yaml:"title" json:"title"`
	Items []ContentItem `yaml:"items" json:"items"`
}

// Country is a catalog of sections for one country code
type Country struct {
	Code     string    `yaml:"code" json:"code"`
	Name     string    `yaml:"name" json:"name"`
	Sections []Section `yaml:"sections" json:"sections"`
}

// Stats is a projection of the rotation state over the active catalog
type Stats struct {
	Total     int
	Disabled  int
	Available int
	Shown     int
}
