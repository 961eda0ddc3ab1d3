// Package formstate provides the default form value store used with
// formsync.
//
// A Store holds a flat field->value mapping seeded from defaults,
// notifies subscribers synchronously on every change, and supports the
// merge-reset contract formsync hydrates through: Reset with a partial
// mapping applies only the named fields and leaves the rest untouched.
//
// Usage:
//
//	store := formstate.New(map[string]any{
//	    "name":     "",
//	    "category": "all",
//	    "page":     float64(1),
//	})
//	stop := store.Subscribe(func() { ... })
//	defer stop()
//	store.Set("name", "widget")
package formstate
