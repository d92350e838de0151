package cli

import (
	"testing"

	"github.com/spf13/viper"
)

func TestBuildConfig_ProviderFromConfigUsesEnvKey(t *testing.T) {
	viper.Set("llm.provider", "openai")
	t.Cleanup(func() { viper.Set("llm.provider", "") })
	t.Setenv("OPENAI_API_KEY", "test-key")

	cfg, err := buildConfig(reportCmd)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.LLM.Provider != "openai" {
		t.Errorf("Expected provider openai, got %q", cfg.LLM.Provider)
	}
	if cfg.LLM.APIKey != "test-key" {
		t.Errorf("Expected API key from environment, got %q", cfg.LLM.APIKey)
	}
}

func TestBuildConfig_ProviderWithoutKeyFails(t *testing.T) {
	viper.Set("llm.provider", "openai")
	t.Cleanup(func() { viper.Set("llm.provider", "") })
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := buildConfig(reportCmd); err == nil {
		t.Fatal("Expected error when no API key is available, got nil")
	}
}

func TestBuildConfig_NoProviderNeedsNoKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := buildConfig(reportCmd)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.LLM.Provider != "" {
		t.Errorf("Expected commentary disabled, got provider %q", cfg.LLM.Provider)
	}
}
