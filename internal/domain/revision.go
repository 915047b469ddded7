package domain

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/zeebo/xxh3"
)

// Revision is one immutable snapshot of a case. Revisions are write-once:
// once committed, nothing in this core can edit or delete them.
type Revision struct {
	CaseID    string    `json:"caseId"`
	Version   int       `json:"version"`
	State     CaseState `json:"state"`
	Action    string    `json:"action"`
	ActorID   string    `json:"actorId,omitempty"`
	Snapshot  Case      `json:"snapshot"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"createdAt"`
}

// SnapshotChecksum hashes the serialized snapshot. Stored alongside each
// revision so out-of-band edits to the log are detectable.
func SnapshotChecksum(snapshot []byte) string {
	return strconv.FormatUint(xxh3.Hash(snapshot), 16)
}

// EncodeSnapshot serializes a case snapshot and returns the bytes together
// with their checksum.
func EncodeSnapshot(c Case) ([]byte, string, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, "", err
	}
	return raw, SnapshotChecksum(raw), nil
}
