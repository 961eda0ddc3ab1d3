// Package formsync keeps a form value store in sync with a URL query
// string, in both directions.
//
// A Syncer couples two controllers over a shared loop guard:
//
//   - Hydration: on the first observation and on every external URL
//     change, query parameters are decoded and merge-reset into the
//     form store. Excluded fields are never read from the URL.
//   - Publication: after the first hydration, every form change starts
//     (or restarts) a debounce window; when it closes, the non-excluded
//     fields are encoded, merged over the unrelated parameters already
//     in the URL, and committed — but only if the canonical string
//     actually changed.
//
// Usage:
//
//	store := formstate.New(map[string]any{"name": "", "page": float64(1)})
//	syncer := formsync.New(source, store,
//	    formsync.Debounce(300*time.Millisecond),
//	    formsync.ExcludeFields("password"),
//	)
//	defer syncer.Close()
//
//	// Wire external URL change notifications:
//	source.OnURLChange(syncer.HydrateFromURL)
//
// Nothing in this package is fatal to the host: malformed query values
// fall back to raw strings, unserializable fields are omitted, and
// over-length URLs and sensitive-looking field names only produce
// diagnostics on the configured logger.
package formsync
