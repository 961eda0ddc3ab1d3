// Package codec converts between form field values and their query
// parameter string representation.
//
// Decode and Encode are the only places untrusted URL content crosses
// into in-process data, so all sanitization lives here: structured
// values are parsed with encoding/json, parse failures degrade to the
// raw string, and top-level objects are stripped of prototype-pollution
// style keys before they are handed to the form store.
//
// Neither function panics; every failure path degrades to "raw string"
// on decode or "empty / omitted" on encode.
package codec
