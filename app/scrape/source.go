package scrape

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source describes the survey board being harvested.
type Source struct {
	BaseURL         string   `yaml:"base_url"`
	ListingPath     string   `yaml:"listing_path"`
	DisallowedPaths []string `yaml:"disallowed_paths"`
}

// DefaultSource returns the built-in board description used when no source
// file is present.
func DefaultSource() Source {
	return Source{
		BaseURL:     "https://www.thegradcafe.com",
		ListingPath: "/survey/",
		DisallowedPaths: []string{
			"/cgi-bin/",
			"/index-ad-test.php",
		},
	}
}

// LoadSource reads the YAML source description from path. A missing file
// falls back to the defaults; a present but invalid file is an error.
func LoadSource(path string) (Source, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultSource(), nil
	}
	if err != nil {
		return Source{}, fmt.Errorf("failed to read source file: %w", err)
	}

	source := DefaultSource()
	if err := yaml.Unmarshal(raw, &source); err != nil {
		return Source{}, fmt.Errorf("failed to parse source file %s: %w", path, err)
	}

	if err := source.validate(); err != nil {
		return Source{}, fmt.Errorf("invalid source file %s: %w", path, err)
	}

	return source, nil
}

func (s Source) validate() error {
	if s.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if !strings.HasPrefix(s.BaseURL, "http://") && !strings.HasPrefix(s.BaseURL, "https://") {
		return fmt.Errorf("base_url must be an absolute http(s) URL")
	}
	if s.ListingPath == "" {
		return fmt.Errorf("listing_path is required")
	}
	return nil
}

// ListingURL builds the URL of one paginated listing page.
func (s Source) ListingURL(page int) string {
	return fmt.Sprintf("%s%s?page=%d", strings.TrimSuffix(s.BaseURL, "/"), s.ListingPath, page)
}

// AbsoluteURL resolves a relative detail reference against the board base.
func (s Source) AbsoluteURL(ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return strings.TrimSuffix(s.BaseURL, "/") + ref
}

// IsRestricted checks the URL against the static deny-list.
func (s Source) IsRestricted(url string) bool {
	for _, path := range s.DisallowedPaths {
		if strings.Contains(url, path) {
			return true
		}
	}
	return false
}
