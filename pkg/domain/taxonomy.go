package domain

// KeywordRule is a single weighted term inside a capability entry.
// Weight is in (0,1]; matching is a literal lowercase substring check.
type KeywordRule struct {
	Term   string
	Weight float64
}

// CapabilityEntry is one bucket of the fixed capability taxonomy. Entries are
// configured out-of-band and read-only to the pipeline.
type CapabilityEntry struct {
	ID               int64
	Slug             string
	Name             string
	Icon             string
	DescriptionTech  string
	DescriptionPlain string
	Active           bool
	Keywords         []KeywordRule // ordered, iteration order matters for tie-breaks
}
