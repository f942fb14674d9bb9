package domain

// RunEntry is a single record in the validation history.
type RunEntry struct {
	Timestamp  string `json:"timestamp"`
	CommitHash string `json:"commit_hash,omitempty"`
	Files      int    `json:"files"`
	Errors     int    `json:"errors"`
	Warnings   int    `json:"warnings"`
	Status     string `json:"status"`
}
