package model_test

import (
	"galpao/shared/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_Touch(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	meta := model.NewMetadata(created, "admin")

	meta.Touch(created.Add(time.Hour), "system")

	assert.Equal(t, created, meta.CreatedAt)
	assert.Equal(t, "admin", meta.CreatedBy)
	assert.Equal(t, created.Add(time.Hour), meta.ModifiedAt)
	assert.Equal(t, "system", meta.ModifiedBy)
}
