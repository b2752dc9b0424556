package profile

// SiteProfile is the owner profile described in the profile configuration
// file and synced into the database at startup.
type SiteProfile struct {
	Profile ProfileInfo `yaml:"profile"`
}

type ProfileInfo struct {
	Name      string            `yaml:"name"`
	Headline  string            `yaml:"headline"`
	Bio       string            `yaml:"bio"`
	AvatarURL string            `yaml:"avatar_url"`
	Location  string            `yaml:"location"`
	Links     map[string]string `yaml:"links"`
	Skills    []string          `yaml:"skills"`
}
