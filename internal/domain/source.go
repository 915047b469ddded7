package domain

import "time"

// Source is a reference document backing case evidence. Sources are never
// hard-deleted; IsDeleted hides them while keeping the audit trail intact.
type Source struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description,omitempty"`
	URL              *string   `json:"url,omitempty"`
	RelatedEntityIDs []string  `json:"relatedEntityIds,omitempty"`
	IsDeleted        bool      `json:"isDeleted"`
	CreatedAt        time.Time `json:"createdAt"`
}
