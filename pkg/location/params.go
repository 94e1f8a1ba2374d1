package location

import (
	"net/url"
	"strings"
)

// Params is an ordered key→value view of a URL's query component.
//
// Keys are unique. Iteration order is the order keys first appeared in the
// query string, and Encode preserves that order on write-back. Params is
// re-derived from the URL on every read; it is a snapshot, not a live view.
type Params struct {
	keys   []string
	values map[string]string
}

// NewParams returns an empty Params.
func NewParams() Params {
	return Params{values: make(map[string]string)}
}

// ParseQuery decodes a raw query string ("a=1&b=two") into Params. A leading
// "?" is tolerated. Pairs that fail percent-decoding, and pairs with an
// empty key, are skipped. A duplicate key keeps the position of its first
// occurrence and the value of its last.
func ParseQuery(raw string) Params {
	p := NewParams()
	raw = strings.TrimPrefix(raw, "?")
	for raw != "" {
		var pair string
		pair, raw, _ = strings.Cut(raw, "&")
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(k)
		if err != nil || key == "" {
			continue
		}
		value, err := url.QueryUnescape(v)
		if err != nil {
			continue
		}
		p.Set(key, value)
	}
	return p
}

// Get returns the value for key and whether the key is present.
func (p Params) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Has reports whether key is present.
func (p Params) Has(key string) bool {
	_, ok := p.values[key]
	return ok
}

// Set stores value under key. A new key is appended to the iteration order;
// an existing key keeps its position.
func (p *Params) Set(key, value string) {
	if p.values == nil {
		p.values = make(map[string]string)
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Delete removes key. Deleting an absent key is a no-op.
func (p *Params) Delete(key string) {
	if _, ok := p.values[key]; !ok {
		return
	}
	delete(p.values, key)
	for i, k := range p.keys {
		if k == key {
			p.keys = append(p.keys[:i], p.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of keys.
func (p Params) Len() int { return len(p.keys) }

// Keys returns the keys in iteration order. The returned slice is a copy.
func (p Params) Keys() []string {
	keys := make([]string, len(p.keys))
	copy(keys, p.keys)
	return keys
}

// Clone returns an independent deep copy.
func (p Params) Clone() Params {
	c := Params{
		keys:   make([]string, len(p.keys)),
		values: make(map[string]string, len(p.values)),
	}
	copy(c.keys, p.keys)
	for k, v := range p.values {
		c.values[k] = v
	}
	return c
}

// Encode serializes the mapping back to a query string in iteration order,
// percent-escaping keys and values. An empty mapping encodes to "".
func (p Params) Encode() string {
	var b strings.Builder
	for i, k := range p.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.values[k]))
	}
	return b.String()
}
