package entity

import (
	"time"

	"github.com/google/uuid"
)

type ActivityLog struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Action    string
	Detail    string
	IpAddress string
	UserAgent string
	CreatedAt time.Time
}
