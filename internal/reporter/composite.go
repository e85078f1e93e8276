package reporter

// CompositeReporter fans every event out to a fixed list of reporters, in
// order, so a session can drive both a terminal and a log reporter from one
// call site.
type CompositeReporter struct {
	reporters []Reporter
}

// NewCompositeReporter returns a CompositeReporter that forwards to each of
// reps in order.
func NewCompositeReporter(reps ...Reporter) *CompositeReporter {
	return &CompositeReporter{reporters: reps}
}

func (c *CompositeReporter) Prefetch(e PrefetchEvent) {
	for _, r := range c.reporters {
		r.Prefetch(e)
	}
}

func (c *CompositeReporter) Seek(e SeekEvent) {
	for _, r := range c.reporters {
		r.Seek(e)
	}
}

func (c *CompositeReporter) Miss(e MissEvent) {
	for _, r := range c.reporters {
		r.Miss(e)
	}
}

func (c *CompositeReporter) Service(e ServiceEvent) {
	for _, r := range c.reporters {
		r.Service(e)
	}
}

func (c *CompositeReporter) BufferFull(e BufferFullEvent) {
	for _, r := range c.reporters {
		r.BufferFull(e)
	}
}

func (c *CompositeReporter) FetchComplete(e FetchEvent) {
	for _, r := range c.reporters {
		r.FetchComplete(e)
	}
}

func (c *CompositeReporter) DecodeStarted(e DecodeEvent) {
	for _, r := range c.reporters {
		r.DecodeStarted(e)
	}
}

func (c *CompositeReporter) Warning(message string) {
	for _, r := range c.reporters {
		r.Warning(message)
	}
}

func (c *CompositeReporter) Error(err error) {
	for _, r := range c.reporters {
		r.Error(err)
	}
}

func (c *CompositeReporter) Verbose(message string) {
	for _, r := range c.reporters {
		r.Verbose(message)
	}
}
