package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PublicationRun is the persisted record of one orchestrated publication call.
// Written best-effort after the result map is assembled; a failed write never
// fails the publication itself.
type PublicationRun struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CourseID   string         `gorm:"column:course_id;not null;index" json:"course_id"`
	Subject    string         `gorm:"column:subject" json:"subject,omitempty"`
	TopicID    string         `gorm:"column:topic_id" json:"topic_id,omitempty"`
	Results    datatypes.JSON `gorm:"column:results;type:jsonb" json:"results"`
	Succeeded  int            `gorm:"column:succeeded;not null;default:0" json:"succeeded"`
	Failed     int            `gorm:"column:failed;not null;default:0" json:"failed"`
	DurationMS int64          `gorm:"column:duration_ms;not null;default:0" json:"duration_ms"`
	CreatedAt  time.Time      `gorm:"not null;default:now();index" json:"created_at"`
}

func (PublicationRun) TableName() string { return "publication_run" }
