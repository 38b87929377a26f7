package model

// Project represents one repository entry scraped from the trending page.
//
// A Project is created fresh on every successful extraction pass and is
// never mutated afterwards. The slice it belongs to is replaced wholesale
// when the next fetch succeeds.
type Project struct {
	// Name is the repository display name in "owner/repo" form, trimmed.
	Name string `json:"name"`

	// URL is the absolute repository URL, resolved from the relative
	// path in the source document against the GitHub origin.
	URL string `json:"url"`

	// Description is the repository description. Empty when the source
	// document carries none.
	Description string `json:"description"`

	// Stars is the star count parsed from display text such as "1.2k".
	// Never negative.
	Stars int `json:"stars"`

	// Forks is the fork count parsed from display text. Never negative.
	Forks int `json:"forks"`

	// Language is the primary programming language. Empty when the
	// source document carries none.
	Language string `json:"language"`

	// UpdatedAt is the last-update timestamp as found in the source:
	// a machine-readable datetime attribute when available, display text
	// otherwise, or the "today" sentinel when the element is absent.
	UpdatedAt string `json:"updatedAt"`

	// Rank is the 1-based position of the project in the source
	// document ordering, counted among emitted records only.
	Rank int `json:"rank"`
}
