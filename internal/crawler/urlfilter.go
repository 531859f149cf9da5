package crawler

import "strings"

// URLFilter skips targets before any network call. Patterns match as plain
// substrings, or as suffixes when written like "*.pdf" or ".pdf".
type URLFilter struct {
	substrings []string
	suffixes   []string
}

// NewURLFilter compiles exclude patterns. A pattern starting with "*" (e.g.
// "*.pdf") or "." is treated as a suffix match; everything else matches as a
// substring anywhere in the URL. Returns nil when no usable pattern remains.
func NewURLFilter(patterns []string) *URLFilter {
	f := &URLFilter{}
	for _, raw := range patterns {
		value := strings.TrimSpace(strings.ToLower(raw))
		if value == "" {
			continue
		}
		switch {
		case strings.HasPrefix(value, "*"):
			if suffix := strings.TrimPrefix(value, "*"); suffix != "" {
				f.suffixes = append(f.suffixes, suffix)
			}
		case strings.HasPrefix(value, "."):
			f.suffixes = append(f.suffixes, value)
		default:
			f.substrings = append(f.substrings, value)
		}
	}
	if len(f.substrings) == 0 && len(f.suffixes) == 0 {
		return nil
	}
	return f
}

// Excluded reports whether the URL matches any exclude pattern.
func (f *URLFilter) Excluded(rawURL string) bool {
	if f == nil || rawURL == "" {
		return false
	}
	lower := strings.ToLower(rawURL)
	for _, s := range f.substrings {
		if strings.Contains(lower, s) {
			return true
		}
	}
	for _, suffix := range f.suffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}
