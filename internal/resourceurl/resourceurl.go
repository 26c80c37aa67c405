// Package resourceurl recognizes content-addressed asset URLs.
//
// Assets uploaded through the editor are stored under a files/ or images/
// directory with a filename carrying a "-sc" marker followed by 13 hex digits,
// for example images/logo-sc5f3a9c01b2d4e.png. Both the scanner and the
// attribute rewriter use this package so they agree on what counts as an asset.
package resourceurl

import (
	"regexp"
	"strings"
)

var (
	resourcePattern = regexp.MustCompile(
		`^[^\s"'(),<>]*(?:files|images)/[^\s"'(),<>]*-sc[0-9a-f]{13}\.[0-9a-zA-Z]+(?:[?#][^\s"'(),<>]*)?$`)

	// scanPattern finds candidates inside serialized markup. Quotes, parens and
	// entity delimiters end a candidate so attribute values, srcset entries and
	// url(...) references are split apart.
	scanPattern = regexp.MustCompile(
		`[^\s"'(),<>;&]*(?:files|images)/[^\s"'(),<>;&]*?-sc[0-9a-f]{13}\.[0-9a-zA-Z]+`)
)

// IsResourceURL reports whether u has the shape of a content-addressed asset URL.
func IsResourceURL(u string) bool {
	return resourcePattern.MatchString(u)
}

// Find returns every asset URL in text, in order of appearance.
func Find(text string) []string {
	var urls []string
	for _, m := range scanPattern.FindAllString(text, -1) {
		if IsResourceURL(m) {
			urls = append(urls, m)
		}
	}
	return urls
}

// AddPrefix prepends prefix to u when u is an asset URL.
func AddPrefix(u, prefix string) string {
	if !IsResourceURL(u) {
		return u
	}
	return prefix + u
}

// RemovePrefix strips a leading prefix from u when what remains is an asset URL.
// Values without the prefix are returned unchanged.
func RemovePrefix(u, prefix string) string {
	if prefix == "" || !strings.HasPrefix(u, prefix) {
		return u
	}
	rest := strings.TrimPrefix(u, prefix)
	if !IsResourceURL(rest) {
		return u
	}
	return rest
}

// RewriteSrcset applies fn to the URL of every candidate in a srcset value.
// Candidate separators, surrounding whitespace and descriptors are kept verbatim.
func RewriteSrcset(srcset string, fn func(string) string) string {
	candidates := strings.Split(srcset, ",")
	for i, c := range candidates {
		start := len(c) - len(strings.TrimLeft(c, " \t\n\r\f"))
		end := start
		for end < len(c) && !isSpace(c[end]) {
			end++
		}
		if end == start {
			continue
		}
		candidates[i] = c[:start] + fn(c[start:end]) + c[end:]
	}
	return strings.Join(candidates, ",")
}

// UnprefixSrcset strips prefix from every asset URL candidate in a srcset
// value. The prefix is matched at each candidate start before the value is
// tokenized, so a prefix holding commas or whitespace is removed whole.
func UnprefixSrcset(srcset, prefix string) string {
	if prefix == "" {
		return srcset
	}

	var b strings.Builder
	i := 0
	for i < len(srcset) {
		if at, u, ok := prefixedCandidate(srcset, i, prefix); ok {
			b.WriteString(srcset[i:at])
			b.WriteString(u)
			i = at + len(prefix) + len(u)
		}
		next := strings.IndexByte(srcset[i:], ',')
		if next < 0 {
			b.WriteString(srcset[i:])
			break
		}
		b.WriteString(srcset[i : i+next+1])
		i += next + 1
	}
	return b.String()
}

// prefixedCandidate finds prefix followed by an asset URL at the candidate
// starting at i. Whitespace may precede the prefix; the earliest match wins.
func prefixedCandidate(s string, i int, prefix string) (at int, u string, ok bool) {
	for k := i; k < len(s); k++ {
		if strings.HasPrefix(s[k:], prefix) {
			rest := s[k+len(prefix):]
			end := 0
			for end < len(rest) && !isSpace(rest[end]) && rest[end] != ',' {
				end++
			}
			if end > 0 && IsResourceURL(rest[:end]) {
				return k, rest[:end], true
			}
		}
		if !isSpace(s[k]) {
			break
		}
	}
	return 0, "", false
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}
