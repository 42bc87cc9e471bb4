package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func baseConfig() *Config {
	return &Config{
		Port:         "8460",
		DBHost:       "localhost",
		DBPort:       "5432",
		DBUser:       "user",
		DBPassword:   "password",
		DBName:       "marketplace",
		DBSSLMode:    "disable",
		RedisURL:     "localhost:6379",
		Env:          "development",
		DeletePolicy: DeletePolicyIgnore,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid development config",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing port",
			mutate:  func(c *Config) { c.Port = "" },
			wantErr: true,
		},
		{
			name:   "cascade policy",
			mutate: func(c *Config) { c.DeletePolicy = DeletePolicyCascade },
		},
		{
			name:   "restrict policy",
			mutate: func(c *Config) { c.DeletePolicy = DeletePolicyRestrict },
		},
		{
			name:    "unknown delete policy",
			mutate:  func(c *Config) { c.DeletePolicy = "soft" },
			wantErr: true,
		},
		{
			name:    "empty delete policy",
			mutate:  func(c *Config) { c.DeletePolicy = "" },
			wantErr: true,
		},
		{
			name: "production rejects default password",
			mutate: func(c *Config) {
				c.Env = "production"
				c.DBSSLMode = "require"
			},
			wantErr: true,
		},
		{
			name: "production rejects disabled ssl",
			mutate: func(c *Config) {
				c.Env = "production"
				c.DBPassword = "a-strong-one"
			},
			wantErr: true,
		},
		{
			name: "valid production config",
			mutate: func(c *Config) {
				c.Env = "production"
				c.DBPassword = "a-strong-one"
				c.DBSSLMode = "require"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
