package database

import (
	"testing"

	"bizportal/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnString(t *testing.T) {
	tests := []struct {
		name     string
		password string
		dbname   string
	}{
		{"plain", "secret", "portal"},
		{"space and quote", "pa ss'word", "portal"},
		{"url delimiters", "p@ss:w/rd?#%", "bi zportal"},
		{"keyword injection", "x sslmode=disable host=evil", "portal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := utils.DatabaseConfig{
				Host:     "db.internal",
				Port:     "6543",
				Name:     tt.dbname,
				User:     "app user",
				Password: tt.password,
				SSLMode:  "require",
			}

			parsed, err := pgx.ParseConfig(ConnString(config))
			require.NoError(t, err)

			assert.Equal(t, "db.internal", parsed.Host)
			assert.Equal(t, uint16(6543), parsed.Port)
			assert.Equal(t, "app user", parsed.User)
			assert.Equal(t, tt.password, parsed.Password)
			assert.Equal(t, tt.dbname, parsed.Database)
			assert.NotNil(t, parsed.TLSConfig)
		})
	}
}

func TestConnString_IPv6Host(t *testing.T) {
	conn := ConnString(utils.DatabaseConfig{Host: "::1", Port: "5432", Name: "portal", User: "u", Password: "p", SSLMode: "disable"})

	parsed, err := pgx.ParseConfig(conn)
	require.NoError(t, err)
	assert.Equal(t, "::1", parsed.Host)
	assert.Nil(t, parsed.TLSConfig)
}
