package domain

// Classification labels.
const (
	Positive = "Positive"
	Negative = "Negative"
	Neutral  = "Neutral"
)

// Fixed thresholds; deliberately not configurable.
const (
	positiveThreshold = 0.1
	negativeThreshold = -0.1
)

// Classify buckets a sentiment score into one of the three labels.
// The boundary values 0.1 and -0.1 map to Neutral.
func Classify(score float64) string {
	switch {
	case score > positiveThreshold:
		return Positive
	case score < negativeThreshold:
		return Negative
	default:
		return Neutral
	}
}
