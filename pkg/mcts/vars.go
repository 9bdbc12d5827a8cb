package mcts

import "time"

type SeedGeneratorFnType func() int64

// Seed source for the engines' random number generators, by default uses
// current time in nanoseconds
var SeedGeneratorFn SeedGeneratorFnType = func() int64 {
	return time.Now().UnixNano()
}

// Set custom seed generator function for random number generators in MCTS,
// tests use this to make searches reproducible
func SetSeedGeneratorFn(f SeedGeneratorFnType) {
	if f != nil {
		SeedGeneratorFn = f
	}
}
