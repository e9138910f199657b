package entities

// Recommendation is the server-computed subject ranking based on a murid's
// quiz history and stated preferences. The client only renders it.
type Recommendation struct {
	RecommendedLevel    string    `json:"recommended_level"`
	CurrentAverageScore float64   `json:"current_average_score"`
	RecommendedSubjects []Subject `json:"recommended_subjects"`
	Message             string    `json:"message"`
}
