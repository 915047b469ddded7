package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/jawafdehi/jawaf"
)

// Case is the current materialized projection of a tracked allegation.
// CaseID is stable across revisions; Version increases by exactly one on
// every persisted change. The revision log, not this projection, is the
// source of truth for audit purposes.
type Case struct {
	CaseID         string                `json:"caseId"`
	Version        int                   `json:"version"`
	CaseType       CaseType              `json:"caseType"`
	State          CaseState             `json:"state"`
	Title          string                `json:"title"`
	Description    string                `json:"description,omitempty"`
	KeyAllegations []string              `json:"keyAllegations,omitempty"`
	Tags           []string              `json:"tags,omitempty"`
	StartDate      *time.Time            `json:"caseStartDate,omitempty"`
	EndDate        *time.Time            `json:"caseEndDate,omitempty"`
	Alleged        []string              `json:"allegedEntities,omitempty"`
	Related        []string              `json:"relatedEntities,omitempty"`
	Locations      []string              `json:"locations,omitempty"`
	Timeline       []jawaf.TimelineEntry `json:"timeline,omitempty"`
	Evidence       []jawaf.EvidenceEntry `json:"evidence,omitempty"`
	Contributors   []string              `json:"contributors,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

// IsAssigned reports whether the user is an assigned contributor.
func (c *Case) IsAssigned(userID string) bool {
	return userID != "" && slices.Contains(c.Contributors, userID)
}

// CompletenessErrors lists what is still missing before the case may enter
// review or be published. Empty means the guard passes.
func (c *Case) CompletenessErrors() []string {
	var missing []string
	if strings.TrimSpace(c.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(c.Description) == "" {
		missing = append(missing, "description")
	}
	if len(c.Alleged) == 0 {
		missing = append(missing, "alleged_entities")
	}
	return missing
}

// Validate enforces rules that hold in every state.
func (c *Case) Validate() error {
	fields := map[string]string{}
	if strings.TrimSpace(c.Title) == "" {
		fields["title"] = "title cannot be empty"
	}
	if _, ok := ParseCaseType(string(c.CaseType)); !ok {
		fields["case_type"] = "unknown case type"
	}
	if _, ok := ParseCaseState(string(c.State)); !ok {
		fields["state"] = "unknown state"
	}
	if len(fields) > 0 {
		return ValidationError{Fields: fields}
	}
	return nil
}

// Clone returns a deep copy, used when building the next revision so the
// loaded projection stays untouched on failure.
func (c *Case) Clone() Case {
	next := *c
	next.KeyAllegations = slices.Clone(c.KeyAllegations)
	next.Tags = slices.Clone(c.Tags)
	next.Alleged = slices.Clone(c.Alleged)
	next.Related = slices.Clone(c.Related)
	next.Locations = slices.Clone(c.Locations)
	next.Timeline = slices.Clone(c.Timeline)
	next.Evidence = slices.Clone(c.Evidence)
	next.Contributors = slices.Clone(c.Contributors)
	return next
}

// CasePatch is a partial content update. Nil fields are left as they are.
// State transitions are not part of a patch; they go through the transition
// path so the state machine can gate them.
type CasePatch struct {
	Title          *string                `json:"title,omitempty"`
	Description    *string                `json:"description,omitempty"`
	KeyAllegations *[]string              `json:"keyAllegations,omitempty"`
	Tags           *[]string              `json:"tags,omitempty"`
	StartDate      *time.Time             `json:"caseStartDate,omitempty"`
	EndDate        *time.Time             `json:"caseEndDate,omitempty"`
	Alleged        *[]string              `json:"allegedEntities,omitempty"`
	Related        *[]string              `json:"relatedEntities,omitempty"`
	Locations      *[]string              `json:"locations,omitempty"`
	Timeline       *[]jawaf.TimelineEntry `json:"timeline,omitempty"`
	Evidence       *[]jawaf.EvidenceEntry `json:"evidence,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p CasePatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.KeyAllegations == nil &&
		p.Tags == nil && p.StartDate == nil && p.EndDate == nil &&
		p.Alleged == nil && p.Related == nil && p.Locations == nil &&
		p.Timeline == nil && p.Evidence == nil
}

// Apply writes the patch onto the case in place.
func (p CasePatch) Apply(c *Case) {
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.KeyAllegations != nil {
		c.KeyAllegations = slices.Clone(*p.KeyAllegations)
	}
	if p.Tags != nil {
		c.Tags = slices.Clone(*p.Tags)
	}
	if p.StartDate != nil {
		c.StartDate = p.StartDate
	}
	if p.EndDate != nil {
		c.EndDate = p.EndDate
	}
	if p.Alleged != nil {
		c.Alleged = slices.Clone(*p.Alleged)
	}
	if p.Related != nil {
		c.Related = slices.Clone(*p.Related)
	}
	if p.Locations != nil {
		c.Locations = slices.Clone(*p.Locations)
	}
	if p.Timeline != nil {
		c.Timeline = slices.Clone(*p.Timeline)
	}
	if p.Evidence != nil {
		c.Evidence = slices.Clone(*p.Evidence)
	}
}
