package feed

import (
	"sort"
	"strconv"
	"time"

	"snapsentinel/internal/models"
)

// UnknownTrigger is the fallback trigger term for alerts without labels.
const UnknownTrigger = "Unknown"

// invalidStamp is rendered for records whose timestamp parses under neither
// supported format. Such records still flow through; they never fail a batch.
const invalidStamp = "Invalid Date"

// isoLayouts are tried in order before falling back to epoch seconds.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ResolveTimestamp disambiguates the wire timestamp: ISO-8601 first, then a
// base-10 integer of Unix seconds. The second return value reports whether
// either attempt succeeded.
func ResolveTimestamp(ts string) (time.Time, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t, true
		}
	}
	if secs, err := strconv.ParseInt(ts, 10, 64); err == nil {
		return time.Unix(secs, 0), true
	}
	return time.Time{}, false
}

// Normalizer turns raw API records into client-facing alerts, rendering
// date and time in a configured location and layout.
type Normalizer struct {
	loc        *time.Location
	dateLayout string
	timeLayout string
}

// NewNormalizer builds a Normalizer. Empty arguments fall back to the host's
// local zone and ISO-style layouts.
func NewNormalizer(timezone, dateLayout, timeLayout string) (*Normalizer, error) {
	if timezone == "" {
		timezone = "Local"
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	if dateLayout == "" {
		dateLayout = "2006-01-02"
	}
	if timeLayout == "" {
		timeLayout = "15:04:05"
	}
	return &Normalizer{loc: loc, dateLayout: dateLayout, timeLayout: timeLayout}, nil
}

// Normalize derives an Alert from a raw record. The trigger term is the name
// of the first label, or UnknownTrigger when the record has none.
func (n *Normalizer) Normalize(raw models.RawAlertRecord) models.Alert {
	alert := models.Alert{
		ID:          raw.ID,
		ImageURL:    raw.ImageURL,
		TriggerTerm: UnknownTrigger,
	}
	if len(raw.Labels) > 0 {
		alert.TriggerTerm = raw.Labels[0].Name
	}
	if t, ok := ResolveTimestamp(raw.Timestamp); ok {
		t = t.In(n.loc)
		alert.Date = t.Format(n.dateLayout)
		alert.Time = t.Format(n.timeLayout)
	} else {
		alert.Date = invalidStamp
		alert.Time = invalidStamp
	}
	return alert
}

// SortDescending orders records newest first by resolved timestamp. The sort
// is stable, so records with equal or unresolvable timestamps keep their
// source order.
func SortDescending(items []models.RawAlertRecord) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, _ := ResolveTimestamp(items[i].Timestamp)
		tj, _ := ResolveTimestamp(items[j].Timestamp)
		return ti.After(tj)
	})
}
