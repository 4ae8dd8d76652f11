// Package sf provides a generic single-flight mechanism for deduplicating
// concurrent function calls with the same key.
//
// Single-flight ensures that only one execution of a function is in-flight
// for a given key at a time. If multiple goroutines call [Singleflight.Do]
// with the same key concurrently, only the first call executes the function;
// subsequent callers block until the first call completes and then receive
// the same result.
//
// [Cache] additionally memoizes results. The generator uses it to read each
// source file exactly once when several target types from the same file are
// generated concurrently:
//
//	sources := sf.NewCache[[]byte]()
//
//	src, err := sources.Do(sourcePath, func() (*[]byte, error) {
//	    data, err := os.ReadFile(sourcePath)
//	    return &data, err
//	})
//
// The generic type parameter T allows type-safe returns without casting.
package sf
