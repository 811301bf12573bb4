package postgres

import (
	"time"

	"gorm.io/datatypes"
)

// Possible archive states of a recruitment record.
const (
	RecruitmentStatusOpen   = "open"
	RecruitmentStatusClosed = "closed"
)

/*
 * 'RecruitmentRecord' is the durable archive row for a published panel.
 * Redis owns the live roster; this table only keeps history after the fact,
 * written from the background worker.
 */
type RecruitmentRecord struct {
	PanelID     string         `gorm:"primaryKey;size:64;not null"`
	Creator     string         `gorm:"size:50;not null;index:idx_recruitment_records_creator"`
	Server      string         `gorm:"size:20;not null"`
	Mode        string         `gorm:"size:20;not null"`
	Rank        string         `gorm:"size:20;default:'None'"`
	Capacity    int            `gorm:"not null"`
	Joined      datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	Status      string         `gorm:"size:10;default:'open';index:idx_recruitment_records_status"`
	PublishedAt time.Time      `gorm:"default:CURRENT_TIMESTAMP"`
	ClosedAt    *time.Time
}
