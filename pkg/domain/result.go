package domain

import "fmt"

// RunResult reports the outcome of a single aggregation run. A run never
// fails outright: callers distinguish full success, partial success and
// zero-fetched no-op from the counts and the collected error strings.
type RunResult struct {
	Fetched    int      `json:"fetched"`
	Inserted   int      `json:"inserted"`
	Duplicates int      `json:"duplicates"`
	Tagged     int      `json:"tagged"`
	Matches    int      `json:"matches"`
	Errors     []string `json:"errors"`
}

// OK reports whether the run completed without any stage errors
func (r RunResult) OK() bool { return len(r.Errors) == 0 }

// String renders a one-line summary suitable for logging
func (r RunResult) String() string {
	return fmt.Sprintf("fetched:%d inserted:%d duplicates:%d tagged:%d matches:%d errors:%d",
		r.Fetched, r.Inserted, r.Duplicates, r.Tagged, r.Matches, len(r.Errors))
}
