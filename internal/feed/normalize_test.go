package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snapsentinel/internal/models"
)

func newUTCNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	n, err := NewNormalizer("UTC", "", "")
	require.NoError(t, err)
	return n
}

func TestResolveTimestamp(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
		ok   bool
	}{
		{
			name: "ISO with zone",
			in:   "2025-01-01T00:00:00Z",
			want: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "ISO with offset",
			in:   "2025-06-15T10:30:00+02:00",
			want: time.Date(2025, 6, 15, 8, 30, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "epoch seconds",
			in:   "1700000000",
			want: time.Unix(1700000000, 0),
			ok:   true,
		},
		{
			name: "unparseable",
			in:   "not-a-date",
			ok:   false,
		},
		{
			name: "empty",
			in:   "",
			ok:   false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ResolveTimestamp(tc.in)
			require.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.True(t, got.Equal(tc.want), "got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNormalizeTriggerTerm(t *testing.T) {
	n := newUTCNormalizer(t)

	withLabels := n.Normalize(models.RawAlertRecord{
		ID:        "a",
		Timestamp: "1700000000",
		Labels: []models.Label{
			{Name: "Person", Confidence: "0.9"},
			{Name: "Vehicle", Confidence: "0.4"},
		},
		ImageURL: "http://x/a.jpg",
	})
	assert.Equal(t, "Person", withLabels.TriggerTerm)

	withoutLabels := n.Normalize(models.RawAlertRecord{
		ID:        "b",
		Timestamp: "1700000000",
	})
	assert.Equal(t, UnknownTrigger, withoutLabels.TriggerTerm)
}

func TestNormalizeFormatsEpochSeconds(t *testing.T) {
	n := newUTCNormalizer(t)

	alert := n.Normalize(models.RawAlertRecord{
		ID:        "a",
		Timestamp: "1700000000",
		ImageURL:  "http://x/a.jpg",
	})

	// 1700000000s is 2023-11-14 22:13:20 UTC.
	assert.Equal(t, "a", alert.ID)
	assert.Equal(t, "http://x/a.jpg", alert.ImageURL)
	assert.Equal(t, "2023-11-14", alert.Date)
	assert.Equal(t, "22:13:20", alert.Time)
}

func TestNormalizeFormatsISO(t *testing.T) {
	n := newUTCNormalizer(t)

	alert := n.Normalize(models.RawAlertRecord{
		ID:        "iso",
		Timestamp: "2025-01-01T12:34:56Z",
	})

	assert.Equal(t, "2025-01-01", alert.Date)
	assert.Equal(t, "12:34:56", alert.Time)
}

func TestNormalizeUnparseableTimestampDoesNotCrash(t *testing.T) {
	n := newUTCNormalizer(t)

	var alert models.Alert
	require.NotPanics(t, func() {
		alert = n.Normalize(models.RawAlertRecord{ID: "bad", Timestamp: "not-a-date"})
	})

	// The record stays in the output with a sentinel rendering.
	assert.Equal(t, "bad", alert.ID)
	assert.Equal(t, invalidStamp, alert.Date)
	assert.Equal(t, invalidStamp, alert.Time)
}

func TestNormalizeIsDeterministic(t *testing.T) {
	n := newUTCNormalizer(t)
	raw := models.RawAlertRecord{
		ID:        "a",
		Timestamp: "2025-03-04T05:06:07Z",
		Labels:    []models.Label{{Name: "Animal", Confidence: "0.7"}},
		ImageURL:  "http://x/a.jpg",
	}

	first := n.Normalize(raw)
	second := n.Normalize(raw)
	assert.Equal(t, first, second)
}

func TestSortDescendingRanksByChronologicalValue(t *testing.T) {
	// Mixed formats must rank by actual instant, not string value.
	items := []models.RawAlertRecord{
		{ID: "t1", Timestamp: "100"},
		{ID: "t2", Timestamp: "2025-01-01T00:00:00Z"},
		{ID: "t3", Timestamp: "50"},
	}

	SortDescending(items)

	require.Len(t, items, 3)
	assert.Equal(t, "t2", items[0].ID)
	assert.Equal(t, "t1", items[1].ID)
	assert.Equal(t, "t3", items[2].ID)
}

func TestSortDescendingIsStableForTies(t *testing.T) {
	items := []models.RawAlertRecord{
		{ID: "first", Timestamp: "1700000000"},
		{ID: "second", Timestamp: "1700000000"},
		{ID: "bad", Timestamp: "nope"},
	}

	SortDescending(items)

	assert.Equal(t, "first", items[0].ID)
	assert.Equal(t, "second", items[1].ID)
	assert.Equal(t, "bad", items[2].ID)
}
