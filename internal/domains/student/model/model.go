package model

import (
	"galpao/shared/model"
	"strings"
)

const (
	TableName  = "students"
	EntityName = "student"

	FieldID       = "id"
	FieldName     = "name"
	FieldPassword = "password"
	FieldPayment  = "payment"
	FieldCredits  = "credits"
)

const defaultPasswordLength = 8

type Student struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Password string `db:"password"`
	Payment  string `db:"payment"`
	Credits  int    `db:"credits"`
	model.Metadata
}

// DefaultPassword is the lowercase name without spaces, cut to eight characters.
func DefaultPassword(name string) string {
	runes := []rune(strings.ReplaceAll(strings.ToLower(name), " ", ""))
	if len(runes) > defaultPasswordLength {
		runes = runes[:defaultPasswordLength]
	}

	return string(runes)
}
