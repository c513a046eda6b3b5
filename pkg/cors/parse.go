package cors

import (
	"strings"

	appErr "github.com/corsgate/corsgate/pkg/errors"
)

// ParseAllowList builds an AllowList from configuration strings. An entry
// wrapped in slashes, like /^https://.*\.example\.com$/, is compiled as a
// pattern; any other entry is an exact origin. Blank entries are skipped.
// The result is never nil, so an all-blank input still yields a list that
// matches nothing.
func ParseAllowList(entries []string) (AllowList, error) {
	list := make(AllowList, 0, len(entries))
	for _, raw := range entries {
		entry := strings.TrimSpace(raw)
		if entry == "" {
			continue
		}
		if len(entry) >= 2 && strings.HasPrefix(entry, "/") && strings.HasSuffix(entry, "/") {
			p, err := NewPattern(entry[1 : len(entry)-1])
			if err != nil {
				return nil, appErr.Wrap(err, appErr.CodeInvalid, "invalid origin pattern").
					WithMeta("entry", entry)
			}
			list = append(list, p)
			continue
		}
		list = append(list, Exact(entry))
	}
	return list, nil
}
