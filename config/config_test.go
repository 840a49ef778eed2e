package config_test

import (
	"galpao/config"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresConnection_DSN(t *testing.T) {
	conn := config.PostgresConnection{
		Host:     "db",
		Port:     "5432",
		Username: "galpao",
		Password: "p@ss w/rd",
		Name:     "galpao",
		Timezone: "UTC",
		SSLMode:  "disable",
	}

	dsn, err := url.Parse(conn.DSN("dev_", map[string]string{"application_name": "galpao", "x-migrations-table": ""}))
	require.NoError(t, err)

	password, ok := dsn.User.Password()
	require.True(t, ok)

	assert.Equal(t, "postgres", dsn.Scheme)
	assert.Equal(t, "galpao", dsn.User.Username())
	assert.Equal(t, "p@ss w/rd", password)
	assert.Equal(t, "db:5432", dsn.Host)
	assert.Equal(t, "/dev_galpao", dsn.Path)
	assert.Equal(t, url.Values{
		"sslmode":          {"disable"},
		"timezone":         {"UTC"},
		"application_name": {"galpao"},
	}, dsn.Query())
}

func TestPostgresConnection_DSNWithoutOptions(t *testing.T) {
	conn := config.PostgresConnection{Host: "localhost", Port: "5432", Username: "postgres", Name: "galpao"}

	dsn, err := url.Parse(conn.DSN("", nil))
	require.NoError(t, err)

	assert.Equal(t, "/galpao", dsn.Path)
	assert.Empty(t, dsn.RawQuery)
}
