package config

import (
	"fmt"
	"strings"
)

// ValidateAPIKey validates API key format
func ValidateAPIKey(apiKey string, keyType string) error {
	if apiKey == "" {
		return fmt.Errorf("%s API key is required", keyType)
	}

	switch keyType {
	case "OpenAI":
		if !strings.HasPrefix(apiKey, "sk-") {
			return fmt.Errorf("invalid OpenAI API key format: must start with 'sk-'")
		}
		if len(apiKey) < 20 {
			return fmt.Errorf("invalid OpenAI API key format: too short")
		}
	}

	return nil
}

// ValidateUploadLimit validates the maximum accepted upload size in megabytes
func ValidateUploadLimit(megabytes int64) error {
	if megabytes <= 0 {
		return fmt.Errorf("upload limit must be positive")
	}
	if megabytes > 1024 {
		return fmt.Errorf("upload limit too large (max 1024 MB)")
	}
	return nil
}
