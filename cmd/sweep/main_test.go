//go:build unit

package main

import (
	"testing"

	"studio-booking/internal/pkg/config"

	"github.com/stretchr/testify/assert"
)

func TestRequirePersistentStore(t *testing.T) {
	tests := []struct {
		driver  string
		wantErr bool
	}{
		{driver: config.StoreDriverPostgres},
		{driver: config.StoreDriverMemory, wantErr: true},
		{driver: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run("driver="+tt.driver, func(t *testing.T) {
			cfg := config.NewTestConfig()
			cfg.Store.Driver = tt.driver
			err := requirePersistentStore(cfg)
			if tt.wantErr {
				assert.ErrorContains(t, err, "STORE_DRIVER")
				return
			}
			assert.NoError(t, err)
		})
	}
}
