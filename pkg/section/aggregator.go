package section

// Aggregator turns visible fractions into the current section.
type Aggregator struct {
	state     State
	threshold float64
}

// NewAggregator uses DefaultThreshold when threshold is outside (0, 1].
func NewAggregator(threshold float64) *Aggregator {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Aggregator{state: NewState(), threshold: threshold}
}

func (a *Aggregator) Threshold() float64 { return a.threshold }

// Observe records that ratio of id's anchor is on screen and returns the current section.
func (a *Aggregator) Observe(id ID, ratio float64) ID {
	return a.Apply(Event{Section: id, Visible: ratio >= a.threshold})
}

// Apply reduces a single event.
func (a *Aggregator) Apply(e Event) ID {
	a.state = Reduce(a.state, e)
	return a.state.Current
}

// Override makes id current and the only visible section. Flags from the old
// scroll position are dropped so later reports start from the new one.
func (a *Aggregator) Override(id ID) {
	a.state = State{Current: id, Visible: Visibility{id: true}}
}

func (a *Aggregator) Current() ID { return a.state.Current }

// Visible returns a copy of the visibility map.
func (a *Aggregator) Visible() Visibility {
	cp := make(Visibility, len(a.state.Visible))
	for k, v := range a.state.Visible {
		cp[k] = v
	}
	return cp
}
