package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserDTO struct {
	Id          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Theme       string    `json:"theme"`
	CreatedAt   time.Time `json:"created_at"`
}

type UpdateThemeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=light dark system"`
}
