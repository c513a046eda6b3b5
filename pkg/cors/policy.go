package cors

import "fmt"

// Predicate decides whether an origin is allowed. It is only consulted for
// non-empty origins the allow-list did not already accept.
type Predicate func(origin string) bool

// Policy decides which origins receive CORS headers. The set of variants is
// closed: AllowAll, OnlyList, OnlyPredicate and ListOrPredicate.
type Policy interface {
	fmt.Stringer
	// allows is only called with a non-empty origin.
	allows(origin string) bool
}

type allowAll struct{}

func (allowAll) allows(string) bool { return true }
func (allowAll) String() string     { return "allow-all" }

type listPolicy struct {
	list AllowList
}

func (p listPolicy) allows(origin string) bool { return p.list.Match(origin) }
func (p listPolicy) String() string            { return fmt.Sprintf("allow-list(%d)", len(p.list)) }

type predicatePolicy struct {
	pred Predicate
}

func (p predicatePolicy) allows(origin string) bool { return p.pred(origin) }
func (predicatePolicy) String() string              { return "predicate" }

type listOrPredicate struct {
	list AllowList
	pred Predicate
}

func (p listOrPredicate) allows(origin string) bool {
	if p.list.Match(origin) {
		return true
	}
	return p.pred(origin)
}

func (p listOrPredicate) String() string {
	return fmt.Sprintf("allow-list(%d)+predicate", len(p.list))
}

// AllowAll grants every request that carries an Origin header.
func AllowAll() Policy { return allowAll{} }

// OnlyList grants origins matched by list. An empty list grants nothing.
func OnlyList(list AllowList) Policy {
	return listPolicy{list: append(AllowList(nil), list...)}
}

// OnlyPredicate grants origins accepted by pred. A nil pred grants nothing.
func OnlyPredicate(pred Predicate) Policy {
	if pred == nil {
		return listPolicy{}
	}
	return predicatePolicy{pred: pred}
}

// ListOrPredicate checks list first and falls back to pred on a miss.
func ListOrPredicate(list AllowList, pred Predicate) Policy {
	if pred == nil {
		return OnlyList(list)
	}
	return listOrPredicate{list: append(AllowList(nil), list...), pred: pred}
}

// NewPolicy picks the variant from the fields that are present. A nil list or
// nil pred counts as omitted; a non-nil empty list is present and matches
// nothing. With both omitted every origin is allowed.
func NewPolicy(list AllowList, pred Predicate) Policy {
	switch {
	case list == nil && pred == nil:
		return AllowAll()
	case pred == nil:
		return OnlyList(list)
	case list == nil:
		return OnlyPredicate(pred)
	default:
		return ListOrPredicate(list, pred)
	}
}

// Allowed reports whether policy grants origin. Empty origins are never
// allowed, whatever the policy. A nil policy behaves like AllowAll.
func Allowed(policy Policy, origin string) bool {
	if origin == "" {
		return false
	}
	if policy == nil {
		return true
	}
	return policy.allows(origin)
}
