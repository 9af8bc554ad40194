package scoring

// Combine collapses a per-dimension breakdown into one weighted score in
// [0, 1]. A zero total weight yields a neutral 0.5.
func Combine(breakdown Breakdown, weights Weights) float64 {
	var sum, totalWeight float64
	for name, score := range breakdown {
		w := weights.ForDimension(name)
		if w <= 0 {
			continue
		}
		sum += score * w
		totalWeight += w
	}

	if totalWeight == 0 {
		return 0.5
	}
	return sum / totalWeight
}
