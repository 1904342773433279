package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukikurage/student-task-tracker/internal/config"
)

func TestRequireLoopback(t *testing.T) {
	tests := []struct {
		addr    string
		wantErr bool
	}{
		{"127.0.0.1:8080", false},
		{"localhost:8080", false},
		{"[::1]:8080", false},
		{"0.0.0.0:8080", true},
		{":8080", true},
		{"192.168.1.10:8080", true},
		{"8080", true},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			err := requireLoopback(tt.addr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewSessionStore(t *testing.T) {
	store, err := newSessionStore(&config.Config{SessionStore: "cookie", SessionSecret: "secret"})
	require.NoError(t, err)
	assert.NotNil(t, store)

	_, err = newSessionStore(&config.Config{SessionStore: "memcached"})
	assert.Error(t, err)
}
