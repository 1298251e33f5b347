package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptionsAddr(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{"bare address", "clickhouse:9000", "clickhouse:9000"},
		{"query params stripped", "clickhouse:9000?dial_timeout=10s&compress=true", "clickhouse:9000"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Options{DSN: tt.dsn}
			assert.Equal(t, tt.want, opts.addr())
		})
	}
}
