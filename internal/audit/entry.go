package audit

// EventRef is the flattened event recorded in each audit entry. The
// payload itself is not logged — commands and file contents can hold
// secrets — only its hash, enough to correlate with a shell history.
type EventRef struct {
	Kind        string `json:"kind"`
	Path        string `json:"path,omitempty"`
	PayloadHash string `json:"payload_hash"`
}

// Entry is one line in the hash-chained JSONL audit log. All fields
// are structs and scalars (no map[string]any) to guarantee
// deterministic json.Marshal field order for reproducible hashing.
type Entry struct {
	Timestamp string   `json:"ts"`
	Event     EventRef `json:"event"`
	Blocked   bool     `json:"blocked"`
	Fired     []string `json:"fired,omitempty"`
	PrevHash  string   `json:"prev_hash"`
}
