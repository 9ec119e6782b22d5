package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Location struct {
	State   string `gorm:"type:varchar(100)" json:"state"`
	City    string `gorm:"type:varchar(100)" json:"city"`
	Address string `gorm:"type:text" json:"address"`
}

func (l Location) String() string {
	return fmt.Sprintf("%s, %s, %s", l.Address, l.City, l.State)
}

// Institution is a college that can be recommended. Lower Rank is better.
type Institution struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Location     Location       `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	Streams      pq.StringArray `gorm:"type:text[]" json:"streams"`
	InterestTags pq.StringArray `gorm:"type:text[];index:,type:gin" json:"interest_tags"`
	Rank         int            `gorm:"not null;default:0;index" json:"rank"`
	Rating       float64        `gorm:"type:numeric(2,1);not null;default:0;index" json:"rating"`
	Website      string         `gorm:"type:varchar(255)" json:"website"`
	IsActive     bool           `gorm:"not null;index" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (i *Institution) TableName() string {
	return "institutions"
}
