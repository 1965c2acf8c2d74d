package model

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Content   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	// Set by the service on update only; stays zero until then.
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

func (Document) TableName() string {
	return "documents"
}
