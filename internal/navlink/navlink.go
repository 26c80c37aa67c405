// Package navlink classifies anchor hrefs as site-internal or external.
package navlink

import (
	"net/url"
	"strings"
)

// Classifier decides whether an href leaves the site.
type Classifier interface {
	IsExternal(href string) bool
}

// HostClassifier treats relative links and absolute links to Host as internal.
// An empty Host makes every absolute link external.
type HostClassifier struct {
	Host string
}

var nonNavigableSchemes = []string{"mailto:", "tel:", "javascript:", "data:"}

// IsExternal reports whether href should be left alone by internal-link routing.
// Fragment-only links and non-navigable schemes count as external.
func (c HostClassifier) IsExternal(href string) bool {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return true
	}

	lower := strings.ToLower(href)
	for _, scheme := range nonNavigableSchemes {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}

	u, err := url.Parse(href)
	if err != nil {
		return true
	}

	if u.Scheme == "" && u.Host == "" {
		return false
	}

	return c.Host == "" || !strings.EqualFold(u.Host, c.Host)
}

// IsExternal classifies href without a same-origin host.
func IsExternal(href string) bool {
	return HostClassifier{}.IsExternal(href)
}

// HostOf returns the host part of baseURL, or "" when it cannot be parsed.
func HostOf(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	return u.Host
}
