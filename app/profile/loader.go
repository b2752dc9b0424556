package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and validation of the site profile file
type Loader struct {
	path string
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads and validates the profile configuration file
func (l *Loader) Load() (*SiteProfile, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}

	var profile SiteProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile YAML: %w", err)
	}

	l.setDefaults(&profile)

	if err := l.validate(&profile); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", l.path, err)
	}

	return &profile, nil
}

func (l *Loader) setDefaults(profile *SiteProfile) {
	if profile.Profile.Links == nil {
		profile.Profile.Links = map[string]string{}
	}
	if profile.Profile.Skills == nil {
		profile.Profile.Skills = []string{}
	}
}

func (l *Loader) validate(profile *SiteProfile) error {
	if profile.Profile.Name == "" {
		return fmt.Errorf("profile name is required")
	}
	return nil
}
