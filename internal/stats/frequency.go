// Package stats computes the catalog's derived views: frequency tables,
// unique-value counts, top-N rankings and share-of-total breakdowns.
//
// Every function is a pure computation over the snapshot it is handed. Nothing
// is cached between calls and nothing is retained after a call returns.
package stats

import (
	"songcatalog/internal/models"
)

// NoValue is returned by MostCommon when a table has no entries
const NoValue = "N/A"

// OtherLabel is the value of the bucket collecting entries beyond the top N
const OtherLabel = "Other"

// OtherFallbackLabel replaces OtherLabel when a shown entry is itself named Other
const OtherFallbackLabel = "All others"

// FrequencyTable maps distinct values to counts and remembers the order in
// which each value was first added.
type FrequencyTable struct {
	keys   []string
	counts map[string]int
}

// Entry is a single value and its count
type Entry struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// NewFrequencyTable creates an empty table
func NewFrequencyTable() *FrequencyTable {
	return &FrequencyTable{counts: make(map[string]int)}
}

// Add increases the count for value by n. The first Add of a value fixes its
// position in the table's insertion order.
func (t *FrequencyTable) Add(value string, n int) {
	if _, ok := t.counts[value]; !ok {
		t.keys = append(t.keys, value)
	}
	t.counts[value] += n
}

// Count returns the count for value, or 0 if absent
func (t *FrequencyTable) Count(value string) int {
	if t == nil {
		return 0
	}
	return t.counts[value]
}

// Len returns the number of distinct values
func (t *FrequencyTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Total returns the sum of all counts
func (t *FrequencyTable) Total() int {
	if t == nil {
		return 0
	}
	total := 0
	for _, k := range t.keys {
		total += t.counts[k]
	}
	return total
}

// Keys returns the distinct values in insertion order
func (t *FrequencyTable) Keys() []string {
	if t == nil {
		return []string{}
	}
	keys := make([]string, len(t.keys))
	copy(keys, t.keys)
	return keys
}

// Entries returns every value with its count, in insertion order
func (t *FrequencyTable) Entries() []Entry {
	if t == nil {
		return []Entry{}
	}
	entries := make([]Entry, len(t.keys))
	for i, k := range t.keys {
		entries[i] = Entry{Value: k, Count: t.counts[k]}
	}
	return entries
}

// Map returns the table as a plain map
func (t *FrequencyTable) Map() map[string]int {
	m := make(map[string]int, t.Len())
	if t == nil {
		return m
	}
	for _, k := range t.keys {
		m[k] = t.counts[k]
	}
	return m
}

// FrequencyByField counts how many songs hold each distinct value of field.
// Nil songs are skipped.
func FrequencyByField(songs []*models.Song, field models.Field) *FrequencyTable {
	table := NewFrequencyTable()
	for _, song := range songs {
		if song == nil {
			continue
		}
		table.Add(song.Value(field), 1)
	}
	return table
}

// UniqueCount returns the number of distinct values of field
func UniqueCount(songs []*models.Song, field models.Field) int {
	seen := make(map[string]struct{})
	for _, song := range songs {
		if song == nil {
			continue
		}
		seen[song.Value(field)] = struct{}{}
	}
	return len(seen)
}

// GroupCardinality maps each distinct groupField value to the number of
// distinct memberField values that occur alongside it, e.g. albums per artist.
// Groups keep the order in which they were first seen.
func GroupCardinality(songs []*models.Song, groupField, memberField models.Field) *FrequencyTable {
	table := NewFrequencyTable()
	members := make(map[string]map[string]struct{})

	for _, song := range songs {
		if song == nil {
			continue
		}
		group := song.Value(groupField)
		member := song.Value(memberField)

		seen, ok := members[group]
		if !ok {
			seen = make(map[string]struct{})
			members[group] = seen
		}
		if _, dup := seen[member]; dup {
			continue
		}
		seen[member] = struct{}{}
		table.Add(group, 1)
	}
	return table
}
