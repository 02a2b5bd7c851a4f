package stats

import "sort"

// Share is a ranked entry with its fraction of the total
type Share struct {
	Value   string  `json:"value"`
	Count   int     `json:"count"`
	Share   float64 `json:"share"`
	Percent float64 `json:"percent"`
	Other   bool    `json:"other,omitempty"`
}

// TopN returns at most n entries ordered by descending count. Equal counts
// keep the table's insertion order.
func TopN(table *FrequencyTable, n int) []Entry {
	if n <= 0 || table.Len() == 0 {
		return []Entry{}
	}

	entries := table.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// MostCommon returns the value with the highest count, or NoValue for an
// empty table.
func MostCommon(table *FrequencyTable) string {
	top := TopN(table, 1)
	if len(top) == 0 {
		return NoValue
	}
	return top[0].Value
}

// ShareBreakdown ranks the top n entries and expresses each as a share of
// total. Counts not covered by the shown entries are collapsed into a trailing
// Other entry. A non-positive total yields an empty breakdown.
func ShareBreakdown(table *FrequencyTable, total, n int) []Share {
	if total <= 0 {
		return []Share{}
	}

	top := TopN(table, n)
	shares := make([]Share, 0, len(top)+1)

	shown := 0
	label := OtherLabel
	for _, e := range top {
		shown += e.Count
		if e.Value == OtherLabel {
			label = OtherFallbackLabel
		}
		shares = append(shares, newShare(e.Value, e.Count, total, false))
	}

	if shown < total {
		shares = append(shares, newShare(label, total-shown, total, true))
	}
	return shares
}

func newShare(value string, count, total int, other bool) Share {
	frac := float64(count) / float64(total)
	return Share{
		Value:   value,
		Count:   count,
		Share:   frac,
		Percent: frac * 100,
		Other:   other,
	}
}
