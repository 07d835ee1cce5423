package feed

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Sources is the optional bootstrap file seeding subscriptions at startup.
type Sources struct {
	Channels []SourceChannel `yaml:"channels"`
}

type SourceChannel struct {
	ID       string `yaml:"channel_id"`
	Username string `yaml:"username"`
}

// LoadSources reads the bootstrap file. A missing file is not an error: the
// store is then the only source of subscriptions.
func LoadSources(path string) (*Sources, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Sources{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var s Sources
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse sources file %s: %w", path, err)
	}

	for _, ch := range s.Channels {
		if ch.ID == "" {
			return nil, fmt.Errorf("sources file %s: channel entry without channel_id", path)
		}
	}

	return &s, nil
}
