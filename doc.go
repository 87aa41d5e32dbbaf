// Package settled implements an address-stable growable vector for Go.
//
// # Overview
//
// A built-in slice grows by allocating a larger backing array and copying
// its elements, which leaves every pointer into the old array stale.
// Vector instead reserves one large range of virtual address space up
// front and grows by making more of that range usable. Elements are never
// relocated, so pointers to them stay valid for as long as the element is
// live. This is useful for:
//
//   - Graphs and intrusive structures that hold pointers to elements
//   - Handing out stable element addresses to other subsystems
//   - Large append-mostly tables that should not pay for copy-on-grow
//
// # Basic Usage
//
//	v, err := settled.New[Point]()
//	if err != nil { ... }
//	defer v.Close() // Release the reservation when done
//
//	v.PushBack(Point{X: 1})
//	p, _ := v.Ptr(0) // p stays valid across any further growth
//
//	for i, p := range v.All() {
//		p.X += float64(i)
//	}
//
// # Growth Policies
//
// Each vector owns an Arena holding a single reservation
// (DefaultReservationSize unless WithReservationSize is given). Two
// policies turn reserved space into usable memory:
//
//   - PolicyLazy (default): the reservation is mapped read/write once and
//     the operating system backs pages on first touch. Growth after the
//     first is free.
//   - PolicyCommit: the reservation is mapped without access and each
//     growth step grants read/write access to exactly the pages needed,
//     one system call per step.
//
// # Element Types
//
// Arena memory is not scanned by the garbage collector, so element types
// must be pointer-free: numbers, booleans, and arrays and structs of those.
// Types containing strings, slices, maps, pointers, channels, funcs or
// interfaces are rejected with ErrElementType.
//
// # Thread Safety
//
// Vector and Arena are not goroutine-safe. Arena.Metrics may be read from
// any goroutine.
//
// # Metrics and Monitoring
//
//	m := v.Metrics()
//	fmt.Printf("Utilization: %.2f%%\n", m.Utilization*100)
//	fmt.Printf("Committed: %d bytes\n", m.Arena.CommittedBytes)
//
// Growth events can be observed with WithObserver; package promstats
// exports them to Prometheus.
package settled
