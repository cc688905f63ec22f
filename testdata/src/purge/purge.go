package purge

import "store"

func drop(s *store.Store) {
	s.Purge() // want `purge is forbidden`
	s.Compact()
	_ = store.Store{}
}
