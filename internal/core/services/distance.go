package services

// ToDistance converts a similarity score to a distance in [0, 1].
// Scores outside [0, 1] are clamped first.
func ToDistance(similarity float64) float64 {
	switch {
	case similarity >= 1:
		return 0
	case similarity <= 0:
		return 1
	default:
		return 1 - similarity
	}
}
