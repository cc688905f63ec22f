package callers

import "store"

func use(s *store.Store, c store.Cleaner) {
	s.Purge()      // want `This method has special conditions surrounding it's use`
	s.Compact()    // want `special conditions` `special conditions`
	store.Reset(s) // want `special conditions`
	_ = s.Len()
	s.Old()
	s.Bare()
	c.Clean() // want `special conditions`
	_ = c.Name()

	_ = store.Store{Name: "x"} // want `special conditions`
	_ = &store.Store{}         // want `special conditions`
	_ = store.New()
}

//annotation:com.annotations.CarefulNow
func local() {} // want local:`annotations\(com\.annotations\.CarefulNow\)`

func callLocal() {
	local() // want `special conditions`
	f := local
	f()
	defer local() // want `special conditions`
	go func() {
		local() // want `special conditions`
	}()
}

func localType() {
	//annotation:com.annotations.CarefulNow
	type guard struct{}

	_ = guard{}  // want `special conditions`
	_ = &guard{} // want `special conditions`
}
