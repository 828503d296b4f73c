package internal

import (
	"sort"
	"strings"
	"time"
)

// Engine enumerates, normalizes, and queries conversation records across
// both storage locations. It holds only the immutable resolved locations;
// every query re-reads storage through its own scoped handles, so concurrent
// calls are independent and safe.
type Engine struct {
	locations StorageLocations
}

// NewEngine creates an Engine over resolved storage locations
func NewEngine(locations StorageLocations) *Engine {
	return &Engine{locations: locations}
}

// Locations returns the storage locations this engine reads from
func (e *Engine) Locations() StorageLocations {
	return e.locations
}

// enumerate loads raw records from the keyed store and the history
// directory. An unreadable keyed store degrades to history files alone
// rather than failing the query.
func (e *Engine) enumerate() []*RawRecord {
	var records []*RawRecord

	if e.locations.HasDatabase() {
		storeRecords, err := NewStore(e.locations.DatabasePath).LoadRecords()
		if err != nil {
			LogWarn("Keyed store unreadable, falling back to history files: %v", err)
		} else {
			records = append(records, storeRecords...)
		}
	}

	if e.locations.HasHistoryDir() {
		historyRecords, err := NewHistoryDir(e.locations.HistoryDir).LoadRecords()
		if err != nil {
			LogWarn("Failed to scan history directory: %v", err)
		} else {
			records = append(records, historyRecords...)
		}
	}

	return records
}

// summarize normalizes one raw record, deriving its timestamp from the file
// mtime when explicit or from ordinal interpolation otherwise.
func (e *Engine) summarize(rec *RawRecord, minOrdinal, maxOrdinal int64, now time.Time) (ConversationSummary, *ConversationDetail) {
	variant := DetectVariant(rec.Content)
	if variant == VariantUnparseable {
		LogDebug("Record %s matches no known schema", rec.Key)
	}

	var createdAt time.Time
	if rec.Source == SourceHistory {
		createdAt = rec.ModTime
	} else {
		createdAt = EstimateCreatedAt(rec.Ordinal, minOrdinal, maxOrdinal, now)
	}

	return Normalize(rec, variant, createdAt)
}

func ordinalBounds(records []*RawRecord) (minOrdinal, maxOrdinal int64) {
	first := true
	for _, rec := range records {
		if rec.Source != SourceStore {
			continue
		}
		if first || rec.Ordinal < minOrdinal {
			minOrdinal = rec.Ordinal
		}
		if first || rec.Ordinal > maxOrdinal {
			maxOrdinal = rec.Ordinal
		}
		first = false
	}
	return minOrdinal, maxOrdinal
}

// List returns summaries of every readable conversation with at least one
// message, newest first (stable on ties), truncated to limit. A limit of
// zero or less means unbounded.
func (e *Engine) List(limit int) ([]ConversationSummary, error) {
	return e.collect(limit, nil)
}

// Search returns the subset of List whose raw serialized content contains
// the query case-insensitively. The match runs against the raw record, not
// the normalized text: a coarse pre-filter that favors recall and accepts
// matches inside fields the summary never surfaces.
func (e *Engine) Search(query string, limit int) ([]ConversationSummary, error) {
	needle := strings.ToLower(query)
	return e.collect(limit, func(rec *RawRecord) bool {
		return strings.Contains(strings.ToLower(string(rec.Content)), needle)
	})
}

func (e *Engine) collect(limit int, match func(*RawRecord) bool) ([]ConversationSummary, error) {
	records := e.enumerate()
	minOrdinal, maxOrdinal := ordinalBounds(records)
	now := time.Now()

	summaries := make([]ConversationSummary, 0, len(records))
	for _, rec := range records {
		if match != nil && !match(rec) {
			continue
		}
		summary, _ := e.summarize(rec, minOrdinal, maxOrdinal, now)
		if summary.MessageCount == 0 {
			continue
		}
		summaries = append(summaries, summary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})

	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

// GetDetail locates the record whose conversation id matches exactly, or
// failing that the first keyed-store record whose key contains id as a
// substring, and returns its detail projection.
func (e *Engine) GetDetail(id string) (*ConversationDetail, error) {
	records := e.enumerate()
	rec, err := findRecord(records, id)
	if err != nil {
		return nil, err
	}

	minOrdinal, maxOrdinal := ordinalBounds(records)
	_, detail := e.summarize(rec, minOrdinal, maxOrdinal, time.Now())
	return detail, nil
}

// GetRaw returns the raw record and its detected variant, for inspection
func (e *Engine) GetRaw(id string) (*RawRecord, SchemaVariant, error) {
	rec, err := findRecord(e.enumerate(), id)
	if err != nil {
		return nil, VariantUnparseable, err
	}
	return rec, DetectVariant(rec.Content), nil
}

func findRecord(records []*RawRecord, id string) (*RawRecord, error) {
	for _, rec := range records {
		if rec.ID == id {
			return rec, nil
		}
	}
	for _, rec := range records {
		if rec.Source == SourceStore && strings.Contains(rec.Key, id) {
			return rec, nil
		}
	}
	return nil, &NotFoundError{Resource: "conversation", ID: id}
}
