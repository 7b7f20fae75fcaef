package model

import (
	"time"

	"github.com/google/uuid"
)

type AIProvider struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string    `gorm:"type:varchar(255);not null"`
	RoutingKey string    `gorm:"type:varchar(255);not null"`
	IsActive   bool      `gorm:"default:true"`
	Order      int       `gorm:"column:sort_order;default:0"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (AIProvider) TableName() string {
	return "ai_providers"
}
