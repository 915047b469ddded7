package domain

import "time"

// EntityKind classifies what a registry entity refers to.
type EntityKind string

const (
	KindPerson       EntityKind = "PERSON"
	KindOrganization EntityKind = "ORGANIZATION"
	KindLocation     EntityKind = "LOCATION"
	KindUnknown      EntityKind = "UNKNOWN"
)

// ParseEntityKind maps a kind string to an EntityKind, defaulting to
// KindUnknown for anything unrecognized.
func ParseEntityKind(s string) EntityKind {
	switch EntityKind(s) {
	case KindPerson, KindOrganization, KindLocation:
		return EntityKind(s)
	default:
		return KindUnknown
	}
}

// Entity is a registry record for a real-world person, organization or
// location. ExternalID, when present, is the system-wide deduplication key;
// entities without one are identified by display name only.
type Entity struct {
	ID          string     `json:"id"`
	ExternalID  *string    `json:"externalId,omitempty"`
	DisplayName string     `json:"displayName"`
	Kind        EntityKind `json:"kind"`
	CreatedAt   time.Time  `json:"createdAt"`
}
