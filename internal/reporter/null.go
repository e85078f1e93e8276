package reporter

// NullReporter discards every event. Useful as the default when no
// diagnostics are requested.
type NullReporter struct{}

func (NullReporter) Prefetch(PrefetchEvent)       {}
func (NullReporter) Seek(SeekEvent)               {}
func (NullReporter) Miss(MissEvent)               {}
func (NullReporter) Service(ServiceEvent)         {}
func (NullReporter) BufferFull(BufferFullEvent)   {}
func (NullReporter) FetchComplete(FetchEvent)     {}
func (NullReporter) DecodeStarted(DecodeEvent)    {}
func (NullReporter) Warning(string)               {}
func (NullReporter) Error(error)                  {}
func (NullReporter) Verbose(string)               {}
