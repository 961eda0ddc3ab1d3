// Package query provides an ordered multi-valued query parameter mapping.
//
// Unlike net/url.Values, Params preserves key insertion order and encodes
// in that order, so two snapshots that contain the same pairs in a
// different order have different canonical strings. Change detection in
// formsync is exact string equality on the canonical form, which makes
// ordering significant by design.
//
// Usage:
//
//	p := query.Parse("category=tech&page=2")
//	p.Set("sort", "asc")
//	p.Encode() // "category=tech&page=2&sort=asc"
package query
