package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// DefaultModel is used when the credentials file does not name a model.
const DefaultModel = "gpt-4o"

// Credentials holds the upstream API credentials read from the local JSON
// file. A missing file is the only fatal startup condition.
type Credentials struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url"`
	Model   string `json:"model"`
}

// LoadCredentials reads and validates the credentials file.
func LoadCredentials(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("credentials file %s: %w", path, err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file %s: %w", path, err)
	}

	if creds.APIKey == "" {
		return nil, errors.New("credentials file is missing api_key")
	}

	if creds.BaseURL == "" {
		return nil, errors.New("credentials file is missing base_url")
	}

	creds.BaseURL = strings.TrimRight(creds.BaseURL, "/")

	if creds.Model == "" {
		creds.Model = DefaultModel
	}

	return &creds, nil
}
