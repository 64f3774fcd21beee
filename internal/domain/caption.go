package domain

import "time"

// CaptionRecord is one generated caption persisted for a user.
// Records are immutable after insertion: the only mutation paths are
// insert and delete.
type CaptionRecord struct {
	ID                uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID            string    `gorm:"type:text;not null;index:idx_caption_history_user_created,priority:1" json:"-"`
	ImageURL          string    `gorm:"type:text;not null" json:"image_url"`
	BasicCaption      string    `gorm:"type:text;not null" json:"basic_caption"`
	EnhancedCaption   string    `gorm:"type:text;not null" json:"enhanced_caption"`
	Style             Style     `gorm:"type:text;not null" json:"style"`
	CustomDescription string    `gorm:"type:text" json:"custom_description,omitempty"`
	StorageKey        string    `gorm:"type:text" json:"storage_key,omitempty"`
	CreatedAt         time.Time `gorm:"index:idx_caption_history_user_created,priority:2" json:"created_at"`
}

// TableName returns the database table name for CaptionRecord.
func (CaptionRecord) TableName() string {
	return "caption_history"
}
