package domain

import (
	"fmt"
	"time"
)

type ActionType string

const (
	AppleScript ActionType = "applescript"
	JXA         ActionType = "jxa"
	Shortcut    ActionType = "shortcut"
	Shell       ActionType = "shell"
)

const (
	DefaultTimeout = 30 * time.Second
	MinTimeout     = time.Second
	MaxTimeout     = 10 * time.Minute

	// DefaultLookbackHours is used when an action does not configure its own
	// lookback default.
	DefaultLookbackHours = 24
)

// Action is a whitelisted external automation capability. Actions are built
// once from configuration at startup and never mutated afterwards.
type Action struct {
	Name         string        `yaml:"-"`
	Type         ActionType    `yaml:"type"`
	Path         string        `yaml:"path,omitempty"`
	ShortcutName string        `yaml:"name,omitempty"`
	Args         []string      `yaml:"args,omitempty"`
	Timeout      time.Duration `yaml:"timeout,omitempty"`
	DefaultHours int           `yaml:"default_hours,omitempty"`
}

// Validate checks that the action definition is runnable.
func (a *Action) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("action name is required")
	}

	switch a.Type {
	case AppleScript, JXA, Shell:
		if a.Path == "" {
			return fmt.Errorf("action %q: path is required for type %q", a.Name, a.Type)
		}
	case Shortcut:
		if a.ShortcutName == "" && a.Path == "" {
			return fmt.Errorf("action %q: shortcut name is required", a.Name)
		}
	default:
		return fmt.Errorf("action %q: unsupported type %q", a.Name, a.Type)
	}

	if a.Timeout < 0 {
		return fmt.Errorf("action %q: timeout must not be negative", a.Name)
	}
	if a.DefaultHours < 0 {
		return fmt.Errorf("action %q: default_hours must not be negative", a.Name)
	}
	return nil
}

// EffectiveTimeout returns the configured timeout clamped to the allowed
// range, or DefaultTimeout when unset.
func (a *Action) EffectiveTimeout() time.Duration {
	if a.Timeout == 0 {
		return DefaultTimeout
	}
	if a.Timeout < MinTimeout {
		return MinTimeout
	}
	if a.Timeout > MaxTimeout {
		return MaxTimeout
	}
	return a.Timeout
}

// EffectiveDefaultHours returns the action's lookback default.
func (a *Action) EffectiveDefaultHours() int {
	if a.DefaultHours == 0 {
		return DefaultLookbackHours
	}
	return a.DefaultHours
}
