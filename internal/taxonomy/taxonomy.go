// Package taxonomy resolves skill names to their synonym and related-skill
// sets. The scorers treat it as an injected dependency so the static tables
// can later be swapped for an external source without touching match logic.
package taxonomy

import "strings"

// DefaultRelatedDiscount is the score multiplier applied when a required
// skill is only covered by a related candidate skill.
const DefaultRelatedDiscount = 0.7

// Entry is the equivalence data for one normalized skill. Zero-value entries
// are valid: unknown skills simply have no synonyms or relations.
type Entry struct {
	Synonyms map[string]struct{}
	Related  map[string]struct{}
}

// HasSynonym reports whether name (normalized) is a synonym of this entry.
func (e Entry) HasSynonym(name string) bool {
	_, ok := e.Synonyms[name]
	return ok
}

// HasRelated reports whether name (normalized) is related to this entry.
func (e Entry) HasRelated(name string) bool {
	_, ok := e.Related[name]
	return ok
}

// Taxonomy is the lookup contract the skill scorer depends on.
type Taxonomy interface {
	// Lookup returns the entry for a skill name. Lookups are
	// case-insensitive and whitespace-normalized; unknown skills return an
	// empty entry, never an error.
	Lookup(skill string) Entry
	// RelatedDiscount is the fixed discount applied to related-skill matches.
	RelatedDiscount() float64
}

// Normalize lowercases and trims a skill name for lookup and comparison.
func Normalize(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}

// Static is an in-memory Taxonomy built once at startup from the bundled
// tables. Synonyms are closed symmetrically: if the table lists B under A,
// both directions resolve.
type Static struct {
	entries  map[string]Entry
	discount float64
}

// NewStatic builds the bundled taxonomy.
func NewStatic() *Static {
	t := &Static{
		entries:  make(map[string]Entry, len(skillSynonyms)+len(skillRelations)),
		discount: DefaultRelatedDiscount,
	}
	for skill, syns := range skillSynonyms {
		for _, syn := range syns {
			t.addSynonym(Normalize(skill), Normalize(syn))
		}
	}
	for skill, related := range skillRelations {
		for _, rel := range related {
			t.addRelated(Normalize(skill), Normalize(rel))
		}
	}
	return t
}

func (t *Static) entry(skill string) Entry {
	e, ok := t.entries[skill]
	if !ok {
		e = Entry{
			Synonyms: make(map[string]struct{}),
			Related:  make(map[string]struct{}),
		}
		t.entries[skill] = e
	}
	return e
}

func (t *Static) addSynonym(a, b string) {
	if a == "" || b == "" || a == b {
		return
	}
	t.entry(a).Synonyms[b] = struct{}{}
	t.entry(b).Synonyms[a] = struct{}{}
}

func (t *Static) addRelated(skill, related string) {
	if skill == "" || related == "" || skill == related {
		return
	}
	t.entry(skill).Related[related] = struct{}{}
}

// Lookup implements Taxonomy.
func (t *Static) Lookup(skill string) Entry {
	return t.entries[Normalize(skill)]
}

// RelatedDiscount implements Taxonomy.
func (t *Static) RelatedDiscount() float64 { return t.discount }
