package models

// AliasCount is how often an alias stalled a flow
type AliasCount struct {
	Alias string
	Flow  string
	Count int
}

// JournalReport summarises the runs of a period
type JournalReport struct {
	Runs    int
	States  map[FlowState]int
	Stalled []AliasCount
}

// FailureRate returns the share of runs that did not settle
func (r JournalReport) FailureRate() float64 {
	if r.Runs == 0 {
		return 0
	}
	return float64(r.Runs-r.States[FlowStateSettled]) / float64(r.Runs)
}
