package matching

// Probability is a coarse fit tier derived from the total score.
type Probability string

const (
	High   Probability = "High"
	Medium Probability = "Medium"
	Low    Probability = "Low"
)

const (
	StrongThreshold = 80
	MediumThreshold = 60
)

// Classify maps a total score onto a probability tier.
func Classify(score int) Probability {
	switch {
	case score >= StrongThreshold:
		return High
	case score >= MediumThreshold:
		return Medium
	default:
		return Low
	}
}
