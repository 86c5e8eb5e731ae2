package lineshape

import "github.com/lineshape/lineshape-go/pkg/lineshape/event"

// compiledFilter decides which event types are delivered.
// Exclude takes precedence over include; an empty include set allows all.
type compiledFilter struct {
	include map[event.Type]struct{}
	exclude map[event.Type]struct{}
}

func newCompiledFilter(include, exclude []event.Type) *compiledFilter {
	f := &compiledFilter{}
	if len(include) > 0 {
		f.include = toSet(include)
	}
	if len(exclude) > 0 {
		f.exclude = toSet(exclude)
	}
	return f
}

func toSet(types []event.Type) map[event.Type]struct{} {
	set := make(map[event.Type]struct{}, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return set
}

// Allows reports whether events of type t pass the filter.
func (f *compiledFilter) Allows(t event.Type) bool {
	if f == nil {
		return true
	}
	if _, ok := f.exclude[t]; ok {
		return false
	}
	if len(f.include) == 0 {
		return true
	}
	_, ok := f.include[t]
	return ok
}
