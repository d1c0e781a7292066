package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that every setting the server cannot run without is
// present. All failures are collected so an operator sees the full list.
func ValidateConfig(cfg *Config) error {
	var problems []string

	required := []struct {
		field string
		value string
	}{
		{"ServerPort", cfg.ServerPort},
		{"DBHost", cfg.DBHost},
		{"DBPort", cfg.DBPort},
		{"DBUser", cfg.DBUser},
		{"DBName", cfg.DBName},
		{"JWTSecret", cfg.JWTSecret},
	}
	for _, r := range required {
		if r.value == "" {
			problems = append(problems, ValidationError{Field: r.field, Message: "is required"}.Error())
		}
	}

	if cfg.JWTSecret != "" && len(cfg.JWTSecret) < 16 {
		problems = append(problems, ValidationError{Field: "JWTSecret", Message: "must be at least 16 characters"}.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
