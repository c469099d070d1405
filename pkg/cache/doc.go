// Package cache provides the two small in-memory caches used by the
// detector.
//
// Value holds one result for a fixed window. The detector keeps its last
// verdict in one so that repeated reads within the window return the very
// same result, and exposes Clear as its explicit invalidation:
//
//	v := cache.NewValue[*Result](5*time.Second, nil)
//	res := v.GetOrCompute(compute)
//	v.Clear()
//
// LRU is a bounded map with optional expiry. The HTTP middleware uses it to
// memoize user-agent parsing across requests:
//
//	uas := cache.NewLRU[string, useragent.UserAgent](1024, cache.WithTTL(10*time.Minute))
//	uas.Put(key, ua)
//	ua, ok := uas.Get(key)
//
// Both are safe for concurrent use.
package cache
