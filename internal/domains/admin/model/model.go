package model

import "galpao/shared/model"

const (
	TableName  = "admin_config"
	EntityName = "admin_config"

	FieldID    = "id"
	FieldKey   = "key"
	FieldValue = "value"

	KeyAdminPassword = "admin_password"
)

// AdminConfig is a key/value setting owned by the administrator.
type AdminConfig struct {
	ID    string `db:"id"`
	Key   string `db:"key"`
	Value string `db:"value"`
	model.Metadata
}
