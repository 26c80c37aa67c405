package config

import (
	"net/url"
	"strings"

	"git.home.luguber.info/inful/sitecake/internal/foundation/errors"
)

// Validate checks a configuration after defaults have been applied.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Site.Root) == "" {
		return invalid("site.root", "site root cannot be empty", cfg.Site.Root)
	}
	if strings.ContainsAny(cfg.Site.EntryPoint, " \t\r\n?#") {
		return invalid("site.entry_point", "entry point must be a bare path without whitespace, query or fragment", cfg.Site.EntryPoint)
	}
	if cfg.Site.BaseURL != "" {
		u, err := url.Parse(cfg.Site.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return invalid("site.base_url", "base URL must be absolute (scheme://host)", cfg.Site.BaseURL)
		}
	}
	if strings.ContainsAny(cfg.Resources.Prefix, " \t\r\n\"'()<>") {
		return invalid("resources.prefix", "resource prefix contains characters not allowed in a URL", cfg.Resources.Prefix)
	}
	return nil
}

func invalid(field, message, value string) error {
	return errors.ValidationError(message).
		WithContext("field", field).
		WithContext("value", value).
		Build()
}
