package domain

// SearchFilter narrows an advanced search. Zero values mean "no filter".
type SearchFilter struct {
	Query       string `json:"query,omitempty"`        // Free-text match on name/content/tags
	Year        string `json:"year,omitempty"`         // Matches the year-NNNN tag
	ProgramArea string `json:"program_area,omitempty"` // Matches a program-area tag
	Donor       string `json:"donor,omitempty"`        // Matches donor tags or the filename
}

// IsZero reports whether no filter criteria were supplied
func (f SearchFilter) IsZero() bool {
	return f.Query == "" && f.Year == "" && f.ProgramArea == "" && f.Donor == ""
}
