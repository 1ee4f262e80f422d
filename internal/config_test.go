package internal

import (
	"strings"
	"testing"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should pass: %v", err)
	}
	if cfg.Realm.Marker != ".nous" {
		t.Errorf("marker = %q, want .nous", cfg.Realm.Marker)
	}
	if len(cfg.Realm.Extensions) == 0 {
		t.Error("default config should recognize at least one extension")
	}
}

func TestRealmConfig_MissingMarker(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Realm.Marker = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty marker should fail validation")
	}
}

func TestRealmConfig_EmptyExtension(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Realm.Extensions = []string{"md", ""}
	if err := cfg.Validate(); err == nil {
		t.Fatal("blank extension entry should fail validation")
	}
}

func TestScanConfig_WorkersBounds(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Scan.Workers = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("zero workers should fail validation")
	}
	cfg.Scan.Workers = 4
	cfg.Scan.BufferSize = 4
	if err := cfg.Validate(); err == nil {
		t.Fatal("tiny buffer should fail validation")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}
