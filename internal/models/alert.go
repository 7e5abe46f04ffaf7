package models

// Label is a single detection produced by the camera pipeline. The JSON keys
// are capitalized on the wire.
type Label struct {
	Name       string `json:"Name"`
	Confidence string `json:"Confidence"`
}

// RawAlertRecord is an alert exactly as the detection API delivers it. The
// timestamp is ambiguous on the wire: either an ISO-8601 date-time or a
// decimal string of Unix seconds, disambiguated by parse success.
type RawAlertRecord struct {
	ID        string  `json:"id"`
	Timestamp string  `json:"timestamp"`
	Labels    []Label `json:"labels"`
	ImageURL  string  `json:"image_url"`
	Status    string  `json:"status"`
}

// Alert is the normalized, client-facing shape. It is fully derived from a
// RawAlertRecord and immutable once built.
type Alert struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	ImageURL    string `json:"imageUrl"`
	TriggerTerm string `json:"triggerTerm"`
}
