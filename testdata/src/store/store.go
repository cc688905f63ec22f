package store

// Store keeps records.
//
//annotation:com.annotations.CarefulNow
type Store struct {
	Name string
}

// New creates a store.
func New() *Store {
	return &Store{}
}

// Purge drops all the records.
//
//annotation:com.annotations.CarefulNow
func (s *Store) Purge() {}

// Compact is annotated twice while annotations move to another package.
//
//annotation:com.annotations.CarefulNow
//annotation:org.legacy.annotations.CarefulNow
func (s *Store) Compact() {}

// Reset carries the relocated annotation only.
//
//annotation:org.legacy.annotations.CarefulNow
func Reset(s *Store) {}

// Len is safe to call.
func (s *Store) Len() int { return 0 }

// Old is deprecated, which is not a reason to be careful.
//
//annotation:com.annotations.Deprecated
func (s *Store) Old() {}

// Bare has no package in its annotation.
//
//annotation:CarefulNow
func (s *Store) Bare() {}

// Cleaner cleans things up.
type Cleaner interface {
	//annotation:com.annotations.CarefulNow
	Clean()

	Name() string
}
