package search

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/nightveil/fops/internal/schema"
)

const (
	// probeSize is the amount of leading bytes sampled to classify a file
	// as text or binary before any line scanning.
	probeSize = 512

	// maxLineSize caps a single scanned line, so that machine-generated
	// single-line files do not abort the scan.
	maxLineSize = 1024 * 1024
)

// contentMatcher holds a compiled content pattern, matching either by
// regular expression or by case-folded substring.
type contentMatcher struct {
	re     *regexp.Regexp
	needle string
	folded bool
}

// compileContent compiles the content pattern of the criteria; a nil
// matcher means matching is by name only.
func compileContent(criteria schema.SearchCriteria) (*contentMatcher, error) {
	if criteria.ContentPattern == "" {
		return nil, nil //nolint:nilnil
	}

	if criteria.UseRegex {
		pattern := criteria.ContentPattern
		if !criteria.CaseSensitive {
			pattern = "(?i)" + pattern
		}

		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("(search) %w: %w", ErrInvalidCriteria, err)
		}

		return &contentMatcher{re: re}, nil
	}

	if criteria.CaseSensitive {
		return &contentMatcher{needle: criteria.ContentPattern}, nil
	}

	return &contentMatcher{needle: strings.ToLower(criteria.ContentPattern), folded: true}, nil
}

// matches reports whether a single line satisfies the content pattern.
func (c *contentMatcher) matches(line string) bool {
	if c.re != nil {
		return c.re.MatchString(line)
	}

	if c.folded {
		return strings.Contains(strings.ToLower(line), c.needle)
	}

	return strings.Contains(line, c.needle)
}

// scanOutcome is the classification of one content-scanned candidate file.
type scanOutcome struct {
	entry  schema.Entry
	lines  []schema.LineMatch
	binary bool
	err    error
}

// scanFile probes a candidate file for binary content and, for text files,
// scans it line-by-line against the content pattern. Line numbers are
// 1-based and lines are recorded without their trailing newline.
func (h *Handler) scanFile(e schema.Entry, content *contentMatcher) scanOutcome {
	out := scanOutcome{entry: e}

	file, err := h.OSOps.Open(e.Path)
	if err != nil {
		out.err = fmt.Errorf("(search) failed to open file: %w", err)

		return out
	}
	defer file.Close()

	reader := bufio.NewReader(file)

	probe, err := reader.Peek(probeSize)
	if err != nil && !errors.Is(err, io.EOF) {
		out.err = fmt.Errorf("(search) failed to probe file: %w", err)

		return out
	}

	if isBinary(probe) {
		out.binary = true

		return out
	}

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)

	lineNo := 0

	for scanner.Scan() {
		lineNo++

		line := scanner.Text()
		if content.matches(line) {
			out.lines = append(out.lines, schema.LineMatch{Number: lineNo, Text: line})
		}
	}

	if err := scanner.Err(); err != nil {
		out.err = fmt.Errorf("(search) failed to scan file: %w", err)
		out.lines = nil

		return out
	}

	return out
}

// isBinary classifies a sampled prefix: any control byte outside horizontal
// tab, line feed and carriage return (or a DEL byte) marks the file binary.
func isBinary(probe []byte) bool {
	for _, b := range probe {
		if b == 0x7f {
			return true
		}

		if b < 0x20 && b != '\t' && b != '\n' && b != '\r' {
			return true
		}
	}

	return false
}

// rankMatches orders matches for presentation: content matches before
// name-only matches, more line hits first, path as tie-break.
func rankMatches(matches []schema.SearchMatch) {
	sort.Slice(matches, func(i, j int) bool {
		iContent, jContent := matches[i].ByContent(), matches[j].ByContent()
		if iContent != jContent {
			return iContent
		}

		if len(matches[i].Lines) != len(matches[j].Lines) {
			return len(matches[i].Lines) > len(matches[j].Lines)
		}

		return matches[i].Entry.Path < matches[j].Entry.Path
	})
}
