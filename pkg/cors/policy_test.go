package cors

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErr "github.com/corsgate/corsgate/pkg/errors"
)

func yes(string) bool { return true }

func TestNewPolicyVariant(t *testing.T) {
	tests := []struct {
		name string
		list AllowList
		pred Predicate
		want string
	}{
		{"both omitted", nil, nil, "allow-all"},
		{"empty list", AllowList{}, nil, "allow-list(0)"},
		{"list only", AllowList{Exact("a"), Exact("b")}, nil, "allow-list(2)"},
		{"predicate only", nil, yes, "predicate"},
		{"both", AllowList{Exact("a")}, yes, "allow-list(1)+predicate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPolicy(tt.list, tt.pred).String())
		})
	}
}

func TestEmptyListMatchesNothing(t *testing.T) {
	assert.False(t, AllowList{}.Match("https://example.com"))
	assert.False(t, AllowList(nil).Match(""))
	assert.False(t, Allowed(NewPolicy(AllowList{}, nil), "https://example.com"))
}

func TestAllowedNilPolicy(t *testing.T) {
	assert.True(t, Allowed(nil, "https://example.com"))
	assert.False(t, Allowed(nil, ""))
}

func TestOnlyPredicateNil(t *testing.T) {
	assert.False(t, Allowed(OnlyPredicate(nil), "https://example.com"))
	assert.Equal(t, "allow-list(1)", ListOrPredicate(AllowList{Exact("x")}, nil).String())
}

func TestOnlyListCopiesEntries(t *testing.T) {
	list := AllowList{Exact("https://example.com")}
	p := OnlyList(list)
	list[0] = Exact("https://changed.example.com")

	assert.True(t, Allowed(p, "https://example.com"))
	assert.False(t, Allowed(p, "https://changed.example.com"))
}

func TestAllowListSkipsNilMatcher(t *testing.T) {
	list := AllowList{nil, Exact("https://example.com")}
	assert.True(t, list.Match("https://example.com"))
}

func TestPatternZeroValue(t *testing.T) {
	var p Pattern
	assert.False(t, p.Match("https://example.com"))
	assert.Equal(t, "//", p.String())
}

func TestPatternOf(t *testing.T) {
	p := PatternOf(regexp.MustCompile(`\.acme\.app$`))
	assert.True(t, p.Match("https://www.acme.app"))
	assert.Equal(t, `/\.acme\.app$/`, p.String())
}

func TestNewPatternError(t *testing.T) {
	_, err := NewPattern("(")
	require.Error(t, err)
	assert.Panics(t, func() { MustPattern("(") })
}

func TestParseAllowList(t *testing.T) {
	list, err := ParseAllowList([]string{
		" https://example.com ",
		"",
		`/^https://[^.]*\.acme\.app$/`,
		"   ",
	})
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, Exact("https://example.com"), list[0])
	assert.IsType(t, Pattern{}, list[1])
	assert.True(t, list.Match("https://www.acme.app"))
	assert.False(t, list.Match("https://a.b.acme.app"))
}

func TestParseAllowListBlankIsPresent(t *testing.T) {
	list, err := ParseAllowList([]string{" "})
	require.NoError(t, err)
	require.NotNil(t, list)
	assert.Equal(t, "allow-list(0)", NewPolicy(list, nil).String())
}

func TestParseAllowListSingleSlashIsExact(t *testing.T) {
	list, err := ParseAllowList([]string{"/"})
	require.NoError(t, err)
	assert.Equal(t, AllowList{Exact("/")}, list)
}

func TestParseAllowListBadPattern(t *testing.T) {
	_, err := ParseAllowList([]string{"https://ok.example.com", "/(/"})
	require.Error(t, err)
	assert.True(t, appErr.IsCode(err, appErr.CodeInvalid))

	var ae *appErr.AppError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "/(/", ae.Meta["entry"])
}

func TestHostSuffix(t *testing.T) {
	pred := HostSuffix(" Example.com ", ".acme.app", "")

	tests := []struct {
		origin string
		want   bool
	}{
		{"https://example.com", true},
		{"https://api.example.com", true},
		{"http://API.EXAMPLE.COM:8080", true},
		{"https://www.acme.app", true},
		{"https://notexample.com", false},
		{"https://example.com.evil.io", false},
		{"null", false},
		{"://bad", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			assert.Equal(t, tt.want, pred(tt.origin))
		})
	}
}

func TestHostSuffixNoSuffixes(t *testing.T) {
	assert.False(t, HostSuffix()("https://example.com"))
}
