package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// MinLevel and MaxLevelNumber bound the reading-complexity scale.
const (
	MinLevel       = 1
	MaxLevelNumber = 5
)

// LevelEntry is one reading-complexity rendition of a record's content.
// The primary-locale body is authored under either "content" or
// "explanation"; Body() abstracts over the two.
type LevelEntry struct {
	Level int `json:"level"`

	Content     string `json:"content,omitempty"`
	Explanation string `json:"explanation,omitempty"`
	ContentEs   string `json:"contentEs,omitempty"`

	KeyTerms                []KeyTerm `json:"keyTerms,omitempty"`
	PatientCounselingPoints []string  `json:"patientCounselingPoints,omitempty"`
	ClinicalNotes           []string  `json:"clinicalNotes,omitempty"`

	// SourceKey is the array position or map key the entry was authored
	// under. Zero when the entry was constructed in code rather than
	// decoded from a content module.
	SourceKey int `json:"-"`
}

// Body returns the primary-locale body, whichever field it was authored in.
func (e *LevelEntry) Body() string {
	if e.Content != "" {
		return e.Content
	}
	return e.Explanation
}

// HasSpanish reports whether a Spanish body exists at this level.
func (e *LevelEntry) HasSpanish() bool {
	return e.ContentEs != ""
}

// LevelSet is a record's ordered collection of level entries. Content
// modules author it in two shapes - an array of entries carrying a
// "level" field, or an object keyed "1".."5" - and both are normalized
// to this single slice at decode time. Map-shaped input is ordered by
// ascending key; array-shaped input keeps authored order.
type LevelSet []LevelEntry

// UnmarshalJSON accepts both authored shapes.
func (ls *LevelSet) UnmarshalJSON(data []byte) error {
	trimmed := firstNonSpace(data)
	switch trimmed {
	case '[':
		var entries []LevelEntry
		if err := json.Unmarshal(data, &entries); err != nil {
			return err
		}
		for i := range entries {
			entries[i].SourceKey = i + 1
			if entries[i].Level == 0 {
				entries[i].Level = i + 1
			}
		}
		*ls = entries
		return nil
	case '{':
		var keyed map[string]LevelEntry
		if err := json.Unmarshal(data, &keyed); err != nil {
			return err
		}
		keys := make([]int, 0, len(keyed))
		for k := range keyed {
			n, err := strconv.Atoi(k)
			if err != nil {
				return fmt.Errorf("levels key %q is not a number", k)
			}
			keys = append(keys, n)
		}
		sort.Ints(keys)
		entries := make([]LevelEntry, 0, len(keys))
		for _, k := range keys {
			e := keyed[strconv.Itoa(k)]
			e.SourceKey = k
			if e.Level == 0 {
				e.Level = k
			}
			entries = append(entries, e)
		}
		*ls = entries
		return nil
	case 'n': // null
		*ls = nil
		return nil
	default:
		return fmt.Errorf("levels must be an array or an object, got %q", string(trimmed))
	}
}

// MarshalJSON always emits the canonical array shape.
func (ls LevelSet) MarshalJSON() ([]byte, error) {
	return json.Marshal([]LevelEntry(ls))
}

// Numbers returns the distinct level numbers present, ascending.
func (ls LevelSet) Numbers() []int {
	seen := make(map[int]struct{}, len(ls))
	for _, e := range ls {
		seen[e.Level] = struct{}{}
	}
	nums := make([]int, 0, len(seen))
	for n := range seen {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// Contiguous reports whether the distinct level numbers form the prefix
// 1..n with no gaps and no duplicate entries.
func (ls LevelSet) Contiguous() bool {
	nums := ls.Numbers()
	if len(nums) != len(ls) {
		return false
	}
	for i, n := range nums {
		if n != i+1 {
			return false
		}
	}
	return true
}

func firstNonSpace(data []byte) byte {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}
