package model

// Assessment is a single record of the AI classifier's verdict for an issue:
// a taxonomy label plus the free-text response that justifies it.
type Assessment struct {
	Label    string `json:"label"`
	Response string `json:"response"`
}

// DuplicateMatch is the classifier's verdict that an issue duplicates an
// existing open issue.
type DuplicateMatch struct {
	Number     int
	Confidence float64
	Reasoning  string
}
