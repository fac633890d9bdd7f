package connurl

import (
	"fmt"
	"slices"
	"strings"
)

// Properties is an ordered bag of connection properties.
// Keys are unique and keep the position of their first insertion.
// A nil *Properties reads as an empty bag.
type Properties struct {
	keys   []string
	values map[string]string
}

// NewProperties creates a bag from alternating key and value arguments.
func NewProperties(pairs ...string) *Properties {
	if len(pairs)%2 != 0 {
		panic("connurl: NewProperties needs an even number of arguments")
	}

	p := &Properties{values: make(map[string]string, len(pairs)/2)}
	for i := 0; i < len(pairs); i += 2 {
		p.Set(pairs[i], pairs[i+1])
	}

	return p
}

// ParseProperties creates a bag from "key=value" items, keeping their order.
func ParseProperties(items []string) (*Properties, error) {
	p := NewProperties()
	for _, item := range items {
		key, value, ok := strings.Cut(item, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: property %q is not in key=value form", ErrInvalidArgument, item)
		}
		p.Set(key, value)
	}

	return p, nil
}

func (p *Properties) Set(key, value string) {
	if p.values == nil {
		p.values = map[string]string{}
	}

	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Get returns the value stored under key, or "" when there is none.
func (p *Properties) Get(key string) string {
	value, _ := p.Lookup(key)
	return value
}

func (p *Properties) Lookup(key string) (string, bool) {
	if p == nil {
		return "", false
	}

	value, ok := p.values[key]
	return value, ok
}

func (p *Properties) Delete(key string) {
	if p == nil {
		return
	}

	if _, ok := p.values[key]; !ok {
		return
	}

	delete(p.values, key)
	if i := slices.Index(p.keys, key); i >= 0 {
		p.keys = slices.Delete(p.keys, i, i+1)
	}
}

func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Keys returns the keys in insertion order.
func (p *Properties) Keys() []string {
	if p == nil {
		return nil
	}
	return slices.Clone(p.keys)
}

// Range calls fn for every property in insertion order until fn returns false.
func (p *Properties) Range(fn func(key, value string) bool) {
	if p == nil {
		return
	}

	for _, key := range p.keys {
		if !fn(key, p.values[key]) {
			return
		}
	}
}

// Clone returns an independent copy. Cloning a nil bag returns an empty one.
func (p *Properties) Clone() *Properties {
	clone := &Properties{values: make(map[string]string, p.Len())}
	p.Range(func(key, value string) bool {
		clone.Set(key, value)
		return true
	})

	return clone
}

// Merge sets every property of other on p, in other's order.
// Existing keys keep their position and take the new value.
func (p *Properties) Merge(other *Properties) {
	other.Range(func(key, value string) bool {
		p.Set(key, value)
		return true
	})
}
