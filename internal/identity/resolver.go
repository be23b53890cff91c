package identity

// Lookup is the store-side access the resolver needs. Implemented by
// store.Store; kept narrow so resolver tests can use a fake.
type Lookup interface {
	GetByKey(key string) (*Identity, error)
}

// Resolver produces exactly one Identity from a CLI reference.
type Resolver struct {
	Store Lookup
}

// Resolve returns the identity named by ref. In raw mode ref is parsed as a
// delimited literal and the store is never consulted; otherwise ref is a key
// looked up in the store, and an absent key is a *NotFoundError.
func (r Resolver) Resolve(ref string, raw bool) (Identity, error) {
	if raw {
		return ParseRaw(ref)
	}

	id, err := r.Store.GetByKey(ref)
	if err != nil {
		return Identity{}, err
	}
	if id == nil {
		return Identity{}, &NotFoundError{Key: ref}
	}
	return *id, nil
}
