package dto

import (
	"galpao/shared/constant"
	"galpao/shared/model"
	"galpao/shared/timezone"
	"time"
)

// Metadata is the audit trail shown to the administrator. The modified pair is
// left empty until the record changes after creation.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedAt string `json:"modified_at,omitempty"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func (m *Metadata) FromModel(meta model.Metadata) {
	m.CreatedAt = formatTime(meta.CreatedAt)
	m.CreatedBy = meta.CreatedBy

	if meta.ModifiedAt.After(meta.CreatedAt) {
		m.ModifiedAt = formatTime(meta.ModifiedAt)
		m.ModifiedBy = meta.ModifiedBy
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return timezone.Format(t, constant.DateFormat)
}
