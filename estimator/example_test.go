package estimator_test

import (
	"fmt"
	"time"

	"github.com/restic/eta/clock"
	"github.com/restic/eta/estimator"
)

func Example() {
	clk := clock.NewManual(time.Time{})
	est, err := estimator.New(clk, nil).InitAndStart(10)
	if err != nil {
		panic(err)
	}
	fmt.Println(est.RemainingTimeAsString())

	clk.Advance(90 * time.Second)
	if err := est.CompleteWorkUnits(3); err != nil {
		panic(err)
	}
	fmt.Println(est.ElapsedTimeAsString(), est.RemainingTimeAsString())
	// Output:
	// ∞
	// 00:01:30 00:03:30
}

func ExampleWindow() {
	w, err := estimator.NewWindow(2)
	if err != nil {
		panic(err)
	}
	clk := clock.NewManual(time.Time{})
	est, err := estimator.New(clk, w).InitAndStart(100)
	if err != nil {
		panic(err)
	}

	for _, step := range []time.Duration{10 * time.Second, 10 * time.Second, 2 * time.Second, 2 * time.Second} {
		clk.Advance(step)
		if err := est.CompleteWorkUnits(10); err != nil {
			panic(err)
		}
	}
	fmt.Println(w.Samples(), est.RemainingTime())
	// Output:
	// [200ms 200ms] 12s
}
