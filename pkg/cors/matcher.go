package cors

import "regexp"

// Matcher reports whether an origin is covered by an allow-list entry.
type Matcher interface {
	Match(origin string) bool
}

// Exact matches an origin by string equality.
type Exact string

func (e Exact) Match(origin string) bool { return string(e) == origin }

func (e Exact) String() string { return string(e) }

// Pattern matches an origin against a regular expression.
// regexp.Regexp keeps no scan position between calls, so a single Pattern can
// be shared by any number of concurrent requests.
type Pattern struct {
	re *regexp.Regexp
}

// NewPattern compiles expr into a Pattern.
func NewPattern(expr string) (Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, err
	}
	return Pattern{re: re}, nil
}

// MustPattern is like NewPattern but panics if expr does not compile.
func MustPattern(expr string) Pattern {
	return Pattern{re: regexp.MustCompile(expr)}
}

// PatternOf wraps an already compiled expression.
func PatternOf(re *regexp.Regexp) Pattern { return Pattern{re: re} }

func (p Pattern) Match(origin string) bool {
	if p.re == nil {
		return false
	}
	return p.re.MatchString(origin)
}

func (p Pattern) String() string {
	if p.re == nil {
		return "//"
	}
	return "/" + p.re.String() + "/"
}

// AllowList is an ordered set of matchers. It matches when any entry does,
// stopping at the first hit.
type AllowList []Matcher

func (l AllowList) Match(origin string) bool {
	for _, m := range l {
		if m != nil && m.Match(origin) {
			return true
		}
	}
	return false
}
