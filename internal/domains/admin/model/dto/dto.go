package dto

import (
	"galpao/internal/domains/admin/model"
	gModel "galpao/shared/model"
	"time"

	"github.com/google/uuid"
)

type LoginRequest struct {
	Password string `json:"password" validate:"required,password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required,password"`
	NewPassword     string `json:"new_password"     validate:"required,min=6,password,nefield=CurrentPassword"`
}

type UpdateValueRequest struct {
	Value string `db:"value" json:"value" validate:"required"`
}

func NewPasswordConfig(hashed, username string, now time.Time) model.AdminConfig {
	return model.AdminConfig{
		ID:       uuid.NewString(),
		Key:      model.KeyAdminPassword,
		Value:    hashed,
		Metadata: gModel.NewMetadata(now, username),
	}
}
