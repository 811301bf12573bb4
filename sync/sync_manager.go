package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	postgres_models "Recluta/models/postgres"
	redis_models "Recluta/models/redis"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SyncManager copies panel lifecycle events from the live Redis state into
// PostgreSQL for history. It runs on the background worker, never on a
// request path.
type SyncManager struct {
	db *gorm.DB
}

// NewSyncManager creates a new instance of the synchronization manager
func NewSyncManager(db *gorm.DB) *SyncManager {
	return &SyncManager{db: db}
}

// ArchivePublish upserts the archive row for a freshly published panel.
func (sm *SyncManager) ArchivePublish(ctx context.Context, roster *redis_models.Roster) error {
	joined, err := json.Marshal(roster.Joined)
	if err != nil {
		return fmt.Errorf("error marshaling joined list for %s: %v", roster.PanelID, err)
	}

	record := postgres_models.RecruitmentRecord{
		PanelID:     roster.PanelID,
		Creator:     roster.Creator,
		Server:      string(roster.Server),
		Mode:        string(roster.Mode),
		Rank:        string(roster.Rank),
		Capacity:    roster.Capacity.Size(),
		Joined:      joined,
		Status:      postgres_models.RecruitmentStatusOpen,
		PublishedAt: time.Now(),
	}

	err = sm.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "panel_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"joined", "status"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("error archiving publish of %s: %v", roster.PanelID, err)
	}
	return nil
}

// ArchiveDelete marks a panel's archive row closed. Missing rows are left
// alone; a panel can expire out of Redis before it was ever archived.
func (sm *SyncManager) ArchiveDelete(ctx context.Context, panelID string) error {
	now := time.Now()
	err := sm.db.WithContext(ctx).
		Model(&postgres_models.RecruitmentRecord{}).
		Where("panel_id = ?", panelID).
		Updates(map[string]interface{}{
			"status":    postgres_models.RecruitmentStatusClosed,
			"closed_at": &now,
		}).Error
	if err != nil {
		return fmt.Errorf("error archiving delete of %s: %v", panelID, err)
	}
	return nil
}
