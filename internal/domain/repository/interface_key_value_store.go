package repository

// KeyValueStore is the persisted single-user state store (profile, settings,
// visited set, shortlist, notes, trips, dining plan). Writes are atomic at the
// granularity of one named key.
type KeyValueStore interface {
	// Get unmarshals the stored value for key into out. Returns false when the
	// key is absent; out is left untouched in that case.
	Get(key string, out any) (bool, error)

	// Set stores the value under key, replacing any previous value.
	Set(key string, value any) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(key string) error
}
