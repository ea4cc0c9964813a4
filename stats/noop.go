package stats

// Noop is a collector that discards all events.
// Useful for testing or when metrics are not needed.
type Noop struct{}

// Compile-time check that Noop implements Collector.
var _ Collector = (*Noop)(nil)

// NewNoop creates a new no-op collector.
func NewNoop() *Noop {
	return &Noop{}
}

func (n *Noop) RecordHit()       {}
func (n *Noop) RecordMiss()      {}
func (n *Noop) RecordInsertion() {}
func (n *Noop) RecordRejection() {}
func (n *Noop) RecordEviction()  {}
func (n *Noop) SetSize(int)      {}
