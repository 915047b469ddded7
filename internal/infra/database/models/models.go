package models

import (
	"time"
)

// Case is the materialized current projection, one row per case_id.
// List-valued fields are serialized JSON. The revision log, not this row,
// is the audit source of truth.
type Case struct {
	CaseID         string     `json:"caseId" gorm:"primaryKey;type:text"`
	Version        int        `json:"version" gorm:"not null"`
	CaseType       string     `json:"caseType" gorm:"type:text;not null"`
	State          string     `json:"state" gorm:"type:text;not null;index"`
	Title          string     `json:"title" gorm:"type:text;not null"`
	Description    string     `json:"description" gorm:"type:text"`
	KeyAllegations string     `json:"keyAllegations" gorm:"type:text"`
	Tags           string     `json:"tags" gorm:"type:text"`
	StartDate      *time.Time `json:"caseStartDate" gorm:"type:date"`
	EndDate        *time.Time `json:"caseEndDate" gorm:"type:date"`
	Alleged        string     `json:"allegedEntities" gorm:"type:text"`
	Related        string     `json:"relatedEntities" gorm:"type:text"`
	Locations      string     `json:"locations" gorm:"type:text"`
	Timeline       string     `json:"timeline" gorm:"type:text"`
	Evidence       string     `json:"evidence" gorm:"type:text"`
	CDate          time.Time  `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate          time.Time  `json:"mdate" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
}

// Revision is one write-once audit row, keyed (case_id, version).
type Revision struct {
	CaseID   string    `json:"caseId" gorm:"primaryKey;type:text"`
	Version  int       `json:"version" gorm:"primaryKey"`
	State    string    `json:"state" gorm:"type:text;not null;index"`
	Action   string    `json:"action" gorm:"type:text;not null"`
	ActorID  string    `json:"actorId" gorm:"type:text"`
	Snapshot string    `json:"snapshot" gorm:"type:text;not null"`
	Checksum string    `json:"checksum" gorm:"type:text;not null"`
	CDate    time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

// Entity is a canonical registry record. external_id is the system-wide
// dedup key when present.
type Entity struct {
	ID          string    `json:"id" gorm:"primaryKey;type:text"`
	ExternalID  *string   `json:"externalId" gorm:"type:text;index:idx_entity_external_id,unique"`
	DisplayName string    `json:"displayName" gorm:"type:text;not null;index"`
	Kind        string    `json:"kind" gorm:"type:text;not null"`
	CDate       time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

// Source is a reference document. Soft-deleted via is_deleted.
type Source struct {
	ID              string    `json:"id" gorm:"primaryKey;type:text"`
	Title           string    `json:"title" gorm:"type:text;not null;index"`
	Description     string    `json:"description" gorm:"type:text"`
	URL             *string   `json:"url" gorm:"type:text;index"`
	RelatedEntities string    `json:"relatedEntityIds" gorm:"type:text"`
	IsDeleted       bool      `json:"isDeleted" gorm:"type:boolean;not null;default:false;index"`
	CDate           time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

// Assignment grants a contributor scoped rights on one case.
type Assignment struct {
	CaseID string    `json:"caseId" gorm:"primaryKey;type:text"`
	UserID string    `json:"userId" gorm:"primaryKey;type:text;index"`
	CDate  time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}
