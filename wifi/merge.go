package wifi

import "sort"

// MergeNetworks deduplicates observations by (SSID, Security), folding
// duplicates with Network.Merge. Input order is preserved for first
// occurrences so that callers get deterministic output before sorting.
func MergeNetworks(observations []Network) []Network {
	merged := make([]Network, 0, len(observations))
	index := make(map[NetworkKey]int, len(observations))

	for _, obs := range observations {
		if i, ok := index[obs.Key()]; ok {
			merged[i].Merge(obs)
			continue
		}
		index[obs.Key()] = len(merged)
		merged = append(merged, obs)
	}
	return merged
}

// SortNetworks sorts the list in place: connected first, then saved, then by
// signal strength descending, with SSID as the final tiebreak.
func SortNetworks(networks []Network) {
	sort.SliceStable(networks, func(i, j int) bool {
		a, b := networks[i], networks[j]
		if a.IsConnected != b.IsConnected {
			return a.IsConnected
		}
		if a.IsSaved != b.IsSaved {
			return a.IsSaved
		}
		if a.Signal != b.Signal {
			return a.Signal > b.Signal
		}
		return a.SSID < b.SSID
	})
}
