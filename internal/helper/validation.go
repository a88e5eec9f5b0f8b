package helper

import (
	"fmt"
	"net/url"
)

// IsValidURL checks that raw is an absolute http(s) URL. It does not
// contact the host.
func IsValidURL(raw string) error {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host: %s", raw)
	}
	return nil
}
