package metrics

import "strings"

// LicenseEntry maps a license identifier or name to a compatibility score.
type LicenseEntry struct {
	Key   string
	Score float64
}

// LicenseTable is an ordered, read-only license compatibility table.
// Order matters for substring lookups: the first entry contained in the
// text wins.
type LicenseTable struct {
	entries []LicenseEntry
	index   map[string]float64
}

// NewLicenseTable copies entries into a table. Later duplicates of a key are
// ignored for exact lookups.
func NewLicenseTable(entries []LicenseEntry) LicenseTable {
	t := LicenseTable{
		entries: append([]LicenseEntry(nil), entries...),
		index:   make(map[string]float64, len(entries)),
	}
	for _, e := range t.entries {
		if _, ok := t.index[e.Key]; !ok {
			t.index[e.Key] = e.Score
		}
	}
	return t
}

// Lookup returns the score for an exact key match.
func (t LicenseTable) Lookup(key string) (float64, bool) {
	s, ok := t.index[key]
	return s, ok
}

// Match returns the first entry whose key occurs in text.
func (t LicenseTable) Match(text string) (LicenseEntry, bool) {
	for _, e := range t.entries {
		if strings.Contains(text, e.Key) {
			return e, true
		}
	}
	return LicenseEntry{}, false
}

// MatchFold is Match with both sides lower-cased.
func (t LicenseTable) MatchFold(text string) (LicenseEntry, bool) {
	lower := strings.ToLower(text)
	for _, e := range t.entries {
		if strings.Contains(lower, strings.ToLower(e.Key)) {
			return e, true
		}
	}
	return LicenseEntry{}, false
}

var defaultLicenses = NewLicenseTable([]LicenseEntry{
	{"LGPL-2.1", 0.75},
	{"MIT", 1},
	{"GPL-3.0", 0.25},
	{"Apache-2.0", 1},
	{"BSD-3-Clause", 1},
	{"BSD-2-Clause", 1},
	{"MPL-2.0", 0.5},
	{"AGPL-3.0", 0.25},
	{"EPL-1.0", 0.5},
	{"EPL-2.0", 0.5},
	{"CC0-1.0", 1},
	{"Unlicense", 1},
	{"ISC", 1},
	{"Zlib", 1},
	{"Artistic-2.0", 0.75},
	{"OFL-1.1", 1},
	{"EUPL-1.2", 0.5},
	{"LGPL-3.0", 0.75},
	{"GPL-2.0", 0.25},
	{"GPL-2.0+", 0.25},
	{"GPL-3.0+", 0.25},
	{"AGPL-3.0+", 0.25},
	{"LGPL-2.1+", 0.75},
	{"LGPL-3.0+", 0.75},
	{"Apache-1.1", 0.5},
	{"Apache-1.0", 0.5},
	{"CC-BY-4.0", 1},
	{"CC-BY-SA-4.0", 0.75},
	{"CC-BY-NC-4.0", 0},
	{"CC-BY-ND-4.0", 0},
	{"CC-BY-NC-SA-4.0", 0},
	{"CC-BY-NC-ND-4.0", 0},
	{"0BSD", 1},
	{"Academic Free License v3.0", 1},
	{"AFL-3.0", 1},
	{"Artistic License 2.0", 0.75},
	{"Boost Software License 1.0", 1},
	{"BSL-1.0", 1},
	{"BSD-4-Clause", 0.75},
	{"BSD-3-Clause-Clear", 1},
	{"Creative Commons license family", 1},
	{"CC", 1},
	{"Creative Commons Zero v1.0 Universal", 1},
	{"Creative Commons Attribution 4.0", 1},
	{"Creative Commons Attribution ShareAlike 4.0", 0.75},
	{"Do What The F*ck You Want To Public License", 1},
	{"WTFPL", 1},
	{"Educational Community License v2.0", 0.75},
	{"ECL-2.0", 0.75},
	{"Eclipse Public License 1.0", 0.5},
	{"Eclipse Public License 2.0", 0.5},
	{"European Union Public License 1.1", 0.5},
	{"EUPL-1.1", 0.5},
	{"GNU Affero General Public License v3.0", 0.25},
	{"GNU General Public License v2.0", 0.25},
	{"GNU General Public License v3.0", 0.25},
	{"GNU Lesser General Public License v2.1", 0.75},
	{"GNU Lesser General Public License v3.0", 0.75},
	{"LaTeX Project Public License v1.3c", 0.75},
	{"LPPL-1.3c", 0.75},
	{"Microsoft Public License", 0.5},
	{"MS-PL", 0.5},
	{"Mozilla Public License 2.0", 0.5},
	{"Open Software License 3.0", 0.5},
	{"OSL-3.0", 0.5},
	{"PostgreSQL License", 1},
	{"PostgreSQL", 1},
	{"SIL Open Font License 1.1", 0.75},
	{"University of Illinois/NCSA Open Source License", 1},
	{"NCSA", 1},
	{"The Unlicense", 1},
	{"zLib License", 1},
})

// DefaultLicenses returns the built-in compatibility table.
func DefaultLicenses() LicenseTable { return defaultLicenses }
