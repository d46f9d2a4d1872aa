package analytics

// mostCommon returns the most frequent item. Ties go to the item seen first,
// so results only depend on input order.
func mostCommon[K comparable](items []K) (K, bool) {
	var best K
	if len(items) == 0 {
		return best, false
	}

	counts := make(map[K]int, len(items))
	order := make([]K, 0, len(items))
	for _, it := range items {
		if _, seen := counts[it]; !seen {
			order = append(order, it)
		}
		counts[it]++
	}

	best = order[0]
	for _, k := range order[1:] {
		if counts[k] > counts[best] {
			best = k
		}
	}
	return best, true
}
