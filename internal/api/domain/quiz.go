package domain

// Question is a single multiple-choice quiz question. CorrectAnswer indexes
// into Options.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// Quiz is a generated question set for one language. Language carries the
// canonical lowercase key, Count the question total.
type Quiz struct {
	Language  string     `json:"language"`
	Count     int        `json:"count"`
	Questions []Question `json:"questions"`
}

// ScoreResult summarizes a scored submission.
type ScoreResult struct {
	Total      int `json:"total"`
	Correct    int `json:"correct"`
	Percentage int `json:"percentage"`
}
