package gorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_DSN(t *testing.T) {
	cfg := Config{Host: "localhost", Port: 5432, Username: "etl", Password: "secret", Database: "weather", Schema: "raw"}
	assert.Equal(t, "host=localhost port=5432 user=etl password=secret dbname=weather sslmode=disable search_path=raw", cfg.DSN())

	cfg.Schema = ""
	cfg.SSLMode = "require"
	assert.Equal(t, "host=localhost port=5432 user=etl password=secret dbname=weather sslmode=require", cfg.DSN())
}
