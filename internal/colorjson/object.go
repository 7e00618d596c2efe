package colorjson

import (
	"slices"
	"strings"
)

// Member is one key/value pair of an [Object].
type Member struct {
	Key   string
	Value any
}

// Object is a JSON object that keeps its members in insertion order.
type Object struct {
	Members []Member
}

// NewObject returns an empty Object with room for n members.
func NewObject(n int) *Object {
	return &Object{Members: make([]Member, 0, n)}
}

// Set stores value under key. An existing key keeps its position and
// takes the new value.
func (o *Object) Set(key string, value any) {
	for i := range o.Members {
		if o.Members[i].Key == key {
			o.Members[i].Value = value
			return
		}
	}
	o.Members = append(o.Members, Member{Key: key, Value: value})
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	for _, m := range o.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Len returns the number of members.
func (o *Object) Len() int {
	return len(o.Members)
}

// Keys returns the keys in order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.Members))
	for i, m := range o.Members {
		keys[i] = m.Key
	}
	return keys
}

// SortKeys orders the members by key, byte-wise.
func (o *Object) SortKeys() {
	slices.SortStableFunc(o.Members, func(a, b Member) int {
		return strings.Compare(a.Key, b.Key)
	})
}
