package config

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	oldConfig := AppConfig
	defer func() { AppConfig = oldConfig }()

	LoadConfig()

	if AppConfig == nil {
		t.Fatal("LoadConfig() left AppConfig nil")
	}
	if AppConfig.ServerAddr != ":8080" {
		t.Errorf("ServerAddr = %q, want %q", AppConfig.ServerAddr, ":8080")
	}
	if AppConfig.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", AppConfig.LogLevel, "info")
	}
	if AppConfig.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want %q", AppConfig.LogFormat, "text")
	}
}
