package config

import (
	"strings"
	"testing"
)

func TestValidateJWTSecret(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		secret  string
		wantErr bool
	}{
		{name: "missing secret", secret: "", wantErr: true},
		{name: "short secret", secret: "too-short", wantErr: true},
		{name: "31 bytes rejected", secret: strings.Repeat("a", 31), wantErr: true},
		{name: "32 bytes accepted", secret: strings.Repeat("a", 32), wantErr: false},
		{name: "long secret accepted", secret: strings.Repeat("a", 64), wantErr: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateJWTSecret(tt.secret)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateJWTSecret(%q) error = %v, wantErr %v", tt.secret, err, tt.wantErr)
			}
		})
	}
}

func TestLoadFailsFastWithoutSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load() succeeded without a signing secret")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", strings.Repeat("s", 32))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Auth.AccessTokenTTLMinutes != 60 {
		t.Errorf("AccessTokenTTLMinutes = %d, want 60", cfg.Auth.AccessTokenTTLMinutes)
	}
	if cfg.Auth.BcryptCost != 12 {
		t.Errorf("BcryptCost = %d, want 12", cfg.Auth.BcryptCost)
	}
	if cfg.App.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q", cfg.App.Addr())
	}
}
