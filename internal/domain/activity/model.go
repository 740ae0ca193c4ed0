package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeCreated         ActivityType = "created"
	TypeUpdated         ActivityType = "updated"
	TypeDeleted         ActivityType = "deleted"
	TypeSettingsUpdated ActivityType = "settings_updated"
	TypeAssetUploaded   ActivityType = "asset_uploaded"
)

// Subjects an activity entry can refer to.
const (
	SubjectProject = "project"
	SubjectBeat    = "beat"
	SubjectSetting = "setting"
	SubjectAsset   = "asset"
)

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	Subject      string       `json:"subject"`
	SubjectID    string       `json:"subject_id,omitempty"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	CreatedAt    time.Time    `json:"created_at"`
}
