package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cafe-site/models"

	"gopkg.in/yaml.v3"
)

// LoadSeed reads a default document from a .json, .yaml or .yml file.
func LoadSeed(path string) (*models.CafeData, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	var data models.CafeData
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &data)
	default:
		err = json.Unmarshal(b, &data)
	}
	if err != nil {
		return nil, fmt.Errorf("parse seed %s: %w", path, err)
	}
	if err := validateStruct(&data); err != nil {
		return nil, fmt.Errorf("seed %s: %w", path, err)
	}
	return &data, nil
}
