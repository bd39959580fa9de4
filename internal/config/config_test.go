package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Encoding.BitPattern != "10110010" {
		t.Fatalf("Unexpected default bit pattern: %s", cfg.Encoding.BitPattern)
	}
	if cfg.Encoding.SampleRate != 1000 {
		t.Fatalf("Unexpected default sample rate: %g", cfg.Encoding.SampleRate)
	}
	if len(cfg.Spectrum.Frequencies) != len(cfg.Spectrum.Amplitudes) {
		t.Fatalf("Default tone lists must align: %d frequencies, %d amplitudes",
			len(cfg.Spectrum.Frequencies), len(cfg.Spectrum.Amplitudes))
	}
	if cfg.QAM.Order != 4 {
		t.Fatalf("Unexpected default QAM order: %d", cfg.QAM.Order)
	}
	if cfg.ARQ.ErrorProbability < 0 || cfg.ARQ.ErrorProbability >= 1 {
		t.Fatalf("Default error probability out of range: %g", cfg.ARQ.ErrorProbability)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("encoding:\n  bit_pattern: \"1111\"\n  scheme: \"AMI\"\nqam:\n  order: 16\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("Failed to write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Encoding.BitPattern != "1111" {
		t.Fatalf("File override not applied: %s", cfg.Encoding.BitPattern)
	}
	if cfg.Encoding.Scheme != "AMI" {
		t.Fatalf("File override not applied: %s", cfg.Encoding.Scheme)
	}
	if cfg.QAM.Order != 16 {
		t.Fatalf("File override not applied: %d", cfg.QAM.Order)
	}

	// untouched sections keep their defaults
	if cfg.Encoding.SampleRate != 1000 {
		t.Fatalf("Default lost on partial override: %g", cfg.Encoding.SampleRate)
	}
	if cfg.QAM.CarrierFreq != 10 {
		t.Fatalf("Default lost on partial override: %g", cfg.QAM.CarrierFreq)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Expected an error for an explicitly named missing config file")
	}
}
