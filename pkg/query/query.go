package query

import (
	"net/url"
	"strings"
)

// Params is an ordered string->string multi-mapping representing a URL
// query string. Keys keep their first-insertion position; values for a
// key keep their addition order.
//
// Params is not safe for concurrent mutation; callers that share a
// Params across goroutines should Clone first.
type Params struct {
	keys   []string
	values map[string][]string
}

// New returns an empty Params.
func New() *Params {
	return &Params{values: make(map[string][]string)}
}

// Parse parses a raw query string (with or without a leading "?") into
// Params. Parsing is tolerant: empty pairs are skipped and tokens whose
// percent-escapes cannot be decoded are kept in their raw form.
func Parse(raw string) *Params {
	p := New()
	raw = strings.TrimPrefix(raw, "?")
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		if key == "" {
			continue
		}
		p.Add(unescape(key), unescape(value))
	}
	return p
}

func unescape(s string) string {
	u, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return u
}

// Get returns the first value for key, or "" if the key is absent.
func (p *Params) Get(key string) string {
	vs := p.values[key]
	if len(vs) == 0 {
		return ""
	}
	return vs[0]
}

// GetAll returns a copy of all values for key, in addition order.
func (p *Params) GetAll(key string) []string {
	vs := p.values[key]
	if len(vs) == 0 {
		return nil
	}
	out := make([]string, len(vs))
	copy(out, vs)
	return out
}

// Has reports whether key is present.
func (p *Params) Has(key string) bool {
	_, ok := p.values[key]
	return ok
}

// Set replaces all values for key with value, appending the key at the
// end of the order if it is new.
func (p *Params) Set(key, value string) {
	if !p.Has(key) {
		p.keys = append(p.keys, key)
	}
	p.values[key] = []string{value}
}

// Add appends a value for key, appending the key at the end of the order
// if it is new.
func (p *Params) Add(key, value string) {
	if !p.Has(key) {
		p.keys = append(p.keys, key)
	}
	p.values[key] = append(p.values[key], value)
}

// Del removes key and all its values.
func (p *Params) Del(key string) {
	if !p.Has(key) {
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

// Keys returns a copy of the keys in order.
func (p *Params) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Len returns the number of distinct keys.
func (p *Params) Len() int {
	return len(p.keys)
}

// Clone returns an independent deep copy.
func (p *Params) Clone() *Params {
	c := &Params{
		keys:   make([]string, len(p.keys)),
		values: make(map[string][]string, len(p.values)),
	}
	copy(c.keys, p.keys)
	for k, vs := range p.values {
		dup := make([]string, len(vs))
		copy(dup, vs)
		c.values[k] = dup
	}
	return c
}

// Encode returns the canonical percent-escaped query string in key
// insertion order. A key with an empty value encodes as "key=".
func (p *Params) Encode() string {
	var b strings.Builder
	for _, k := range p.keys {
		for _, v := range p.values[k] {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(k))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(v))
		}
	}
	return b.String()
}

// Values returns a url.Values snapshot for interop with net/http APIs.
// Ordering is lost; use Encode for the canonical form.
func (p *Params) Values() url.Values {
	out := make(url.Values, len(p.values))
	for k, vs := range p.values {
		dup := make([]string, len(vs))
		copy(dup, vs)
		out[k] = dup
	}
	return out
}
