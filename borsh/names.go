package borsh

import (
	"github.com/wippyai/idl-codec/errors"
)

// registry resolves a record by its declared name, then by a normalised
// spelling built once at construction.
type registry struct {
	what      string
	normalise func(string) string
	exact     map[string]*record
	folded    map[string]string
}

func newRegistry(what string, normalise func(string) string, size int) *registry {
	return &registry{
		what:      what,
		normalise: normalise,
		exact:     make(map[string]*record, size),
		folded:    make(map[string]string, size),
	}
}

// add rejects a name that equals or normalises to one already present.
// Both would share a discriminator and lookups could not tell them apart.
func (r *registry) add(name string, rec *record) error {
	if _, ok := r.exact[name]; ok {
		return errors.New(errors.PhaseBuild, errors.KindInvalidData).
			Name(name).
			Detail("duplicate %s", r.what).
			Build()
	}
	key := r.normalise(name)
	if prev, ok := r.folded[key]; ok {
		return errors.New(errors.PhaseBuild, errors.KindInvalidData).
			Name(name).
			Detail("%s %q collides with %q after case normalisation", r.what, name, prev).
			Build()
	}
	r.exact[name] = rec
	r.folded[key] = name
	return nil
}

func (r *registry) find(name string) (*record, bool) {
	if rec, ok := r.exact[name]; ok {
		return rec, true
	}
	if declared, ok := r.folded[r.normalise(name)]; ok {
		return r.exact[declared], true
	}
	return nil, false
}

func (r *registry) len() int { return len(r.exact) }

func (r *registry) names() []string { return sortedKeys(r.exact) }
