package settled_test

import (
	"fmt"

	"github.com/pavanmanishd/settled"
)

// Example demonstrates basic vector usage
func Example() {
	v, err := settled.Of(1, 2, 3)
	if err != nil {
		panic(err)
	}
	defer v.Close() // Always release the reservation

	v.PopBack()
	v.PushBack(5)
	v.Insert(0, 0)

	fmt.Println(v.Slice())
	fmt.Println("len:", v.Len())

	first, _ := v.Ptr(1)

	// Growth never moves elements.
	for i := 0; i < 10000; i++ {
		v.PushBack(i)
	}
	again, _ := v.Ptr(1)
	fmt.Println("same address:", first == again)

	// Output:
	// [0 1 2 5]
	// len: 4
	// same address: true
}

// ExampleVector_Erase demonstrates removing elements while iterating
func ExampleVector_Erase() {
	v, _ := settled.Of(1, 2, 3, 4, 5, 6)
	defer v.Close()

	for i := 0; i < v.Len(); {
		x, _ := v.Get(i)
		if x%2 == 0 {
			i, _ = v.Erase(i)
			continue
		}
		i++
	}
	fmt.Println(v.Slice())

	// Output:
	// [1 3 5]
}

// ExampleVector_EmplaceBack demonstrates constructing elements in place
func ExampleVector_EmplaceBack() {
	type particle struct {
		X, Y, VX, VY float64
	}

	v, _ := settled.New[particle]()
	defer v.Close()

	for i := 0; i < 3; i++ {
		v.EmplaceBack(func(p *particle) {
			p.X, p.VX = float64(i), 1
		})
	}
	for _, p := range v.All() {
		p.X += p.VX
	}
	for i, p := range v.Backward() {
		fmt.Printf("%d: x=%.0f\n", i, p.X)
	}

	// Output:
	// 2: x=3
	// 1: x=2
	// 0: x=1
}

// ExampleWithPolicy demonstrates explicit commit growth
func ExampleWithPolicy() {
	v, _ := settled.New[int64](
		settled.WithPolicy(settled.PolicyCommit),
		settled.WithReservationSize(64<<20),
	)
	defer v.Close()

	v.PushBack(1)
	m := v.Metrics()
	fmt.Println("policy:", m.Arena.Policy)
	fmt.Println("commits:", m.Arena.Commits)
	fmt.Println("reserved MiB:", m.Arena.ReservedBytes>>20)

	// Output:
	// policy: commit
	// commits: 1
	// reserved MiB: 64
}

// ExampleVector_Move demonstrates transferring ownership
func ExampleVector_Move() {
	a, _ := settled.Of[int32](7, 8, 9)
	defer a.Close()

	b := a.Move()
	defer b.Close()

	fmt.Println("a:", a.Len(), a.Cap())
	fmt.Println("b:", b.Slice())

	// Output:
	// a: 0 0
	// b: [7 8 9]
}
