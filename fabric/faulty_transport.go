package fabric

// FaultyTransport wraps a Transport and lets a test corrupt or drop
// outbound messages before they reach the peer, the fault-injection idea
// the reference network simulator used to drop and shuffle messages for
// specific machines, adapted here to the fabric's point-to-point transport
// instead of its original round-based N-party delivery loop.
type FaultyTransport struct {
	inner   Transport
	corrupt func(msg []byte) []byte
	drop    func(msg []byte) bool
}

// NewFaultyTransport wraps inner so that every outbound Send first passes
// through corrupt (nil leaves the message untouched) and then through drop
// (nil never drops).
func NewFaultyTransport(inner Transport, corrupt func([]byte) []byte, drop func([]byte) bool) *FaultyTransport {
	return &FaultyTransport{inner: inner, corrupt: corrupt, drop: drop}
}

// Send implements Transport, applying the configured corruption and drop
// rules before delegating.
func (t *FaultyTransport) Send(msg []byte) error {
	if t.drop != nil && t.drop(msg) {
		return nil
	}
	if t.corrupt != nil {
		msg = t.corrupt(msg)
	}
	return t.inner.Send(msg)
}

// Recv implements Transport by delegating unmodified.
func (t *FaultyTransport) Recv() ([]byte, error) { return t.inner.Recv() }

// Close implements Transport by delegating.
func (t *FaultyTransport) Close() error { return t.inner.Close() }
