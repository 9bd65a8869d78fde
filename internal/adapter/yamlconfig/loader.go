// Package yamlconfig loads the gateway settings file. A missing or malformed
// file is a startup failure: the gateway never serves without a valid
// whitelist.
package yamlconfig

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"macgate/internal/domain"
	"macgate/internal/registry"
)

const (
	DefaultListen    = ":8787"
	DefaultAPIKeyEnv = "MACGATE_API_KEY"
)

// EmailDigestConfig names the whitelist entries that make up the email digest.
type EmailDigestConfig struct {
	Unread   string `yaml:"unread"`
	Meetings string `yaml:"meetings"`
	NewMail  string `yaml:"new_mail"`
}

// Sections returns the digest's section-name to action-key mapping.
func (c *EmailDigestConfig) Sections() map[string]string {
	return map[string]string{
		"unread":   c.Unread,
		"meetings": c.Meetings,
		"new_mail": c.NewMail,
	}
}

type ReportsConfig struct {
	EmailDigest *EmailDigestConfig `yaml:"email_digest,omitempty"`
}

type Settings struct {
	Listen        string                    `yaml:"listen,omitempty"`
	APIKeyEnv     string                    `yaml:"api_key_env,omitempty"`
	APIKeyCommand []string                  `yaml:"api_key_command,omitempty"`
	LogFile       string                    `yaml:"log_file,omitempty"`
	Scripts       map[string]*domain.Action `yaml:"scripts"`
	Reports       ReportsConfig             `yaml:"reports,omitempty"`
}

// Load reads and validates the settings file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}

	if s.Listen == "" {
		s.Listen = DefaultListen
	}
	if s.APIKeyEnv == "" {
		s.APIKeyEnv = DefaultAPIKeyEnv
	}

	if len(s.Scripts) == 0 {
		return nil, fmt.Errorf("config %q: no scripts defined", path)
	}
	for name, action := range s.Scripts {
		if action == nil {
			return nil, fmt.Errorf("config %q: script %q is empty", path, name)
		}
		action.Name = name
		action.Path = expandHome(action.Path)
		if err := action.Validate(); err != nil {
			return nil, fmt.Errorf("config %q: %w", path, err)
		}
	}

	if digest := s.Reports.EmailDigest; digest != nil {
		for section, key := range digest.Sections() {
			if key == "" {
				return nil, fmt.Errorf("config %q: email_digest.%s is required", path, section)
			}
			if _, ok := s.Scripts[key]; !ok {
				return nil, fmt.Errorf("config %q: email_digest.%s refers to unknown script %q", path, section, key)
			}
		}
	}

	return &s, nil
}

// BuildRegistry populates a fresh whitelist from the settings.
func (s *Settings) BuildRegistry() (*registry.Registry, error) {
	reg := registry.New()
	for _, action := range s.Scripts {
		if err := reg.Register(action); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// ResolveAPIKey returns the shared secret: the configured environment variable
// when set, otherwise the output of the configured lookup command (the
// original deployment read the key from the macOS keychain this way).
func (s *Settings) ResolveAPIKey() (string, error) {
	if key := strings.TrimSpace(os.Getenv(s.APIKeyEnv)); key != "" {
		return key, nil
	}

	if len(s.APIKeyCommand) > 0 {
		out, err := exec.Command(s.APIKeyCommand[0], s.APIKeyCommand[1:]...).Output()
		if err != nil {
			return "", fmt.Errorf("api key command failed: %w", err)
		}
		if key := strings.TrimSpace(string(out)); key != "" {
			return key, nil
		}
		return "", fmt.Errorf("api key command produced no output")
	}

	return "", fmt.Errorf("api key not found: set %s or configure api_key_command", s.APIKeyEnv)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
