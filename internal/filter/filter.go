// Package filter provides the compound selection predicates driving the
// traversal, transfer and search operations. A [schema.FilterSpec] is compiled
// once into a [Matcher], which is then evaluated against any number of
// discovered entries without further I/O.
package filter

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
	"github.com/nightveil/fops/internal/schema"
)

// Matcher is the compiled form of a [schema.FilterSpec], ready for repeated
// evaluation against discovered entries.
//
// A Matcher performs no I/O and is safe for concurrent use.
type Matcher struct {
	spec schema.FilterSpec
	ext  string
	name glob.Glob
}

// Compile validates a [schema.FilterSpec] and compiles it into a [Matcher].
// Malformed criteria are rejected here, before any traversal takes place.
func Compile(spec schema.FilterSpec) (*Matcher, error) {
	m := &Matcher{
		spec: spec,
		ext:  strings.ToLower(strings.TrimPrefix(spec.Extension, ".")),
	}

	if spec.NamePattern != "" {
		g, err := glob.Compile(spec.NamePattern)
		if err != nil {
			return nil, fmt.Errorf("(filter) %w: %w: %w", ErrInvalidCriteria, ErrInvalidPattern, err)
		}
		m.name = g
	}

	return m, nil
}

// Spec returns the [schema.FilterSpec] the [Matcher] was compiled from.
func (m *Matcher) Spec() schema.FilterSpec {
	return m.spec
}

// Matches reports whether an [schema.Entry] satisfies every predicate of the
// compiled specification. Size and modification time predicates constrain
// files only; directories pass through them unexamined.
func (m *Matcher) Matches(e schema.Entry) bool {
	if !m.spec.IncludeHidden && e.Hidden() {
		return false
	}

	if m.ext != "" && (e.IsDir || e.Ext() != m.ext) {
		return false
	}

	if m.name != nil && !m.name.Match(e.Name) {
		return false
	}

	if !e.IsDir {
		if m.spec.MinSize > 0 && e.Size < m.spec.MinSize {
			return false
		}
		if m.spec.MaxSize > 0 && e.Size > m.spec.MaxSize {
			return false
		}
		if !m.spec.ModifiedAfter.IsZero() && e.ModifiedAt.Before(m.spec.ModifiedAfter) {
			return false
		}
		if !m.spec.ModifiedBefore.IsZero() && e.ModifiedAt.After(m.spec.ModifiedBefore) {
			return false
		}
	}

	return true
}

// ExcludeSubtree reports whether traversal should not descend into the given
// directory at all. Hidden directories prune their entire subtree unless
// hidden elements are included.
func (m *Matcher) ExcludeSubtree(e schema.Entry) bool {
	return e.IsDir && e.Hidden() && !m.spec.IncludeHidden
}
