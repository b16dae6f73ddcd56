package schema

// SearchCriteria describes a search operation over a filesystem tree,
// combining structural selection with an optional content pattern.
type SearchCriteria struct {
	// Filter is the structural [FilterSpec] that candidates must satisfy.
	Filter FilterSpec

	// ContentPattern is the text to look for inside candidate files. When
	// empty, matching is by name only and file contents are never opened.
	ContentPattern string

	// UseRegex interprets ContentPattern as a regular expression instead of
	// a literal substring.
	UseRegex bool

	// CaseSensitive matches content without case folding.
	CaseSensitive bool
}

// LineMatch is a single matching line within a searched file.
type LineMatch struct {
	// Number is the 1-based line number of the match.
	Number int

	// Text is the matching line, without its trailing newline.
	Text string
}

// SearchMatch is one element matched during a search.
type SearchMatch struct {
	// Entry is the matched element.
	Entry Entry

	// Lines holds the matching lines in file order; empty for matches that
	// were produced by name alone.
	Lines []LineMatch
}

// ByContent returns whether the match was produced by content matching.
func (m SearchMatch) ByContent() bool {
	return len(m.Lines) > 0
}
