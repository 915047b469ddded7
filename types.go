package jawaf

import (
	"time"
)

// EntityRef is an entity reference inside an import payload. At least one of
// ExternalID or DisplayName is required; ExternalID wins when both are set.
type EntityRef struct {
	ExternalID  *string `json:"externalId,omitempty"`
	DisplayName string  `json:"displayName,omitempty"`
	Kind        string  `json:"kind,omitempty"`
}

// SourceRef is a source reference inside an import payload.
type SourceRef struct {
	Title       string  `json:"title"`
	URL         *string `json:"url,omitempty"`
	Description string  `json:"description,omitempty"`
}

// TimelineEntry is one dated event in a case timeline.
type TimelineEntry struct {
	Date        string `json:"date,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order"`
}

// EvidenceEntry links a case to a source with an optional note.
type EvidenceEntry struct {
	SourceID    string `json:"sourceId"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order"`
}

// ImportPayload is the structured case JSON produced by the extraction
// pipeline. Shape validation (field presence and types) happens upstream;
// the importer only enforces domain rules.
type ImportPayload struct {
	CaseType       string          `json:"caseType,omitempty"`
	State          string          `json:"state,omitempty"`
	Title          string          `json:"title"`
	Description    string          `json:"description,omitempty"`
	KeyAllegations []string        `json:"keyAllegations,omitempty"`
	Tags           []string        `json:"tags,omitempty"`
	StartDate      string          `json:"caseStartDate,omitempty"`
	EndDate        string          `json:"caseEndDate,omitempty"`
	Alleged        []EntityRef     `json:"allegedEntities,omitempty"`
	Related        []EntityRef     `json:"relatedEntities,omitempty"`
	Locations      []EntityRef     `json:"locations,omitempty"`
	Timeline       []TimelineEntry `json:"timeline,omitempty"`
	Sources        []SourceRef     `json:"sources,omitempty"`
}

// ImportSummary reports what a single import run did.
type ImportSummary struct {
	CaseID          string `json:"caseId"`
	EntitiesCreated int    `json:"entitiesCreated"`
	EntitiesReused  int    `json:"entitiesReused"`
	SourcesCreated  int    `json:"sourcesCreated"`
	SourcesReused   int    `json:"sourcesReused"`
}

// Event is a lifecycle notification published after a committed revision.
type Event struct {
	Type      string    `json:"type"`
	CaseID    string    `json:"caseId"`
	Version   int       `json:"version"`
	State     string    `json:"state"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// EntityMetadata is what the external lookup oracle returns for an entity
// identifier. The oracle is read-only; nothing here is persisted.
type EntityMetadata struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"displayName"`
	Kind        string   `json:"kind,omitempty"`
	Description string   `json:"description,omitempty"`
	Aliases     []string `json:"aliases,omitempty"`
}
