package calculations

// NormalizeRate переводит ставку в десятичную дробь.
// Значения ≥ 1 считаются процентами, поэтому ставка ровно 1 означает 1%, а не 100%.
func NormalizeRate(rate float64) float64 {
	if rate >= 1 {
		return rate / 100
	}
	return rate
}
