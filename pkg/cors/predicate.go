package cors

import (
	"net/url"
	"strings"
)

// HostSuffix returns a Predicate allowing origins whose host is one of
// suffixes or a subdomain of one. Origins that do not parse as URLs with a
// host are rejected.
func HostSuffix(suffixes ...string) Predicate {
	clean := make([]string, 0, len(suffixes))
	for _, s := range suffixes {
		s = strings.ToLower(strings.Trim(strings.TrimSpace(s), "."))
		if s != "" {
			clean = append(clean, s)
		}
	}
	return func(origin string) bool {
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		host := strings.ToLower(u.Hostname())
		if host == "" {
			return false
		}
		for _, s := range clean {
			if host == s || strings.HasSuffix(host, "."+s) {
				return true
			}
		}
		return false
	}
}
