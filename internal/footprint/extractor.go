// Package footprint locates and normalizes the action items a model reply
// proposes between the [FOOTPRINTS] sentinel markers.
package footprint

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"time"
)

// Sentinel markers delimiting the JSON action-item payload inside a
// free-text model reply. The persona package emits the same literals in
// its prompt contract.
const (
	OpenMarker  = "[FOOTPRINTS]"
	CloseMarker = "[/FOOTPRINTS]"
)

// blockPattern captures the first sentinel-delimited payload, non-greedy.
// Additional blocks in the same reply are ignored.
var blockPattern = regexp.MustCompile(`(?s)\[FOOTPRINTS\](.*?)\[/FOOTPRINTS\]`)

// ActionItem is a single extracted footprint candidate, ready for
// persistence. The extractor does not own storage; its lifecycle ends at
// the persistence hand-off.
type ActionItem struct {
	Action      string
	DueTime     string
	DueDate     time.Time
	IsCompleted bool
	Priority    int
}

type Extractor struct {
	logger *slog.Logger
}

func NewExtractor(logger *slog.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract scans a model reply for the first [FOOTPRINTS] block and returns
// the action items it contains, in array order, with priorities 1..N.
// Missing markers, unparseable JSON, and malformed entries all degrade to
// fewer or zero items; this runs inside the user-facing chat path, so the
// reply itself must always be deliverable. It never returns an error.
func (e *Extractor) Extract(responseText string, today time.Time) []ActionItem {
	return e.extract(responseText, today, 0)
}

// ExtractWithPriority is Extract with every item pinned to a fixed
// priority, for the single-item confirmation flow.
func (e *Extractor) ExtractWithPriority(responseText string, today time.Time, priority int) []ActionItem {
	return e.extract(responseText, today, priority)
}

func (e *Extractor) extract(responseText string, today time.Time, fixedPriority int) []ActionItem {
	m := blockPattern.FindStringSubmatch(responseText)
	if m == nil {
		return nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(m[1]), &entries); err != nil {
		e.logger.Warn("footprint payload is not a valid JSON array", "error", err)
		return nil
	}

	items := make([]ActionItem, 0, len(entries))
	for i, entry := range entries {
		var fields struct {
			Action  string `json:"action"`
			DueTime string `json:"due_time"`
		}
		if err := json.Unmarshal(entry, &fields); err != nil {
			e.logger.Warn("skipping malformed footprint entry", "index", i, "error", err)
			continue
		}

		// Entries with an empty action are kept deliberately, matching
		// the behaviour the rest of the product was built against.
		due := fields.DueTime
		if due == "" {
			due = "Today"
		}

		priority := i + 1
		if fixedPriority > 0 {
			priority = fixedPriority
		}

		items = append(items, ActionItem{
			Action:   fields.Action,
			DueTime:  due,
			DueDate:  ResolveDueDate(due, today),
			Priority: priority,
		})
	}
	return items
}
