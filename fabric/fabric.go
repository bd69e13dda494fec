// Package fabric implements a dependency-tracked, asynchronously-driven
// dataflow graph executor: a dense integer identifier space, gates
// scheduled as Operations, a single-threaded executor, and future-like
// ResultHandles that resolve once the executor publishes their value.
package fabric

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/renegade-fi/mpc-stark/algebra"
	"github.com/renegade-fi/mpc-stark/beaver"
)

// Config configures a Fabric at construction time.
type Config struct {
	// PartyId is this party's identity in the two-party protocol.
	PartyId PartyId
	// MacKeyShare is this party's additive share of the SPDZ MAC key alpha.
	MacKeyShare algebra.Scalar
	// ValueSource produces Beaver triples and other correlated randomness.
	// It is consumed exclusively by the executor goroutine.
	ValueSource beaver.SharedValueSource
	// Transport is the abstract duplex channel to the peer.
	Transport Transport
	// CircuitSizeHint pre-sizes the internal buffers.
	CircuitSizeHint int
	// JobQueueDepth bounds the buffered job channel. Zero selects a
	// reasonable default.
	JobQueueDepth int
	// Logger receives structured fabric/executor/network logs. A no-op
	// logger is used if nil.
	Logger *zap.SugaredLogger
}

const defaultJobQueueDepth = 1024

// Fabric is the runtime object owning a session's identifier space,
// scheduling queue, shared-value source, MAC key share, and network
// connection (GLOSSARY). It is the only component user code interacts with
// directly; arithmetic on MPC/authenticated values schedules gates against
// it under the hood.
type Fabric struct {
	partyId     PartyId
	sessionId   uuid.UUID
	macKeyShare algebra.Scalar
	valueSource beaver.SharedValueSource

	nextId atomic.Uint64

	jobQueue chan executorMessage
	outbound chan NetworkOutbound
	store    *resultStore

	executor *Executor
	network  *NetworkAdapter
	netErrCh <-chan error

	logger *zap.SugaredLogger

	shutdownOnce sync.Once
	wg           sync.WaitGroup
}

// New constructs a Fabric and starts its executor and network adapter
// goroutines.
func New(cfg Config) *Fabric {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	depth := cfg.JobQueueDepth
	if depth == 0 {
		depth = defaultJobQueueDepth
	}

	f := &Fabric{
		partyId:     cfg.PartyId,
		sessionId:   uuid.New(),
		macKeyShare: cfg.MacKeyShare,
		valueSource: cfg.ValueSource,
		jobQueue:    make(chan executorMessage, depth),
		outbound:    make(chan NetworkOutbound, depth),
		store:       newResultStore(cfg.CircuitSizeHint),
	}
	f.logger = logger.With("session_id", f.sessionId.String(), "party_id", int(cfg.PartyId))

	f.executor = newExecutor(cfg.CircuitSizeHint, f.jobQueue, f.store, f.outbound, f.logger)
	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		f.executor.Run()
	}()

	if cfg.Transport != nil {
		f.network = newNetworkAdapter(cfg.Transport, f.outbound, f.jobQueue, f.logger)
		f.netErrCh = f.network.Run()
	}

	f.logger.Infow("fabric started")
	return f
}

// PartyId returns this party's identity. Party 0 is the king, the party
// that absorbs public constants into its own share on public operations.
func (f *Fabric) PartyId() PartyId { return f.partyId }

// SessionId returns the session identifier used to correlate this
// fabric's log lines.
func (f *Fabric) SessionId() uuid.UUID { return f.sessionId }

// NetworkErrors returns the channel on which fatal network-adapter errors
// are reported, or nil if this fabric has no transport.
func (f *Fabric) NetworkErrors() <-chan error { return f.netErrCh }

func (f *Fabric) allocateId() ResultId {
	return ResultId(f.nextId.Add(1) - 1)
}

func (f *Fabric) enqueue(msg executorMessage) {
	f.jobQueue <- msg
}

// AllocateScalar enqueues a zero-argument gate producing v and returns a
// handle to it.
func (f *Fabric) AllocateScalar(v algebra.Scalar) ScalarHandle {
	id := f.allocateId()
	f.enqueue(executorMessage{kind: jobOp, op: Operation{
		Id:        id,
		Args:      nil,
		ResultIds: []ResultId{id},
		Type:      OpGate,
		Gate:      func([]ResultValue) ResultValue { return ValueFromScalar(v) },
	}})
	return asScalarHandle(newHandle(f, id))
}

// AllocatePoint enqueues a zero-argument gate producing p and returns a
// handle to it.
func (f *Fabric) AllocatePoint(p algebra.Point) PointHandle {
	id := f.allocateId()
	f.enqueue(executorMessage{kind: jobOp, op: Operation{
		Id:        id,
		Args:      nil,
		ResultIds: []ResultId{id},
		Type:      OpGate,
		Gate:      func([]ResultValue) ResultValue { return ValueFromPoint(p) },
	}})
	return asPointHandle(newHandle(f, id))
}

// NewGateOp schedules a single-output pure-function gate over the given
// argument handles and returns a handle to its result.
func (f *Fabric) NewGateOp(args []ResultHandle, fn GateFn) ResultHandle {
	id := f.allocateId()
	f.enqueue(executorMessage{kind: jobOp, op: Operation{
		Id:        id,
		Args:      idsOf(args),
		ResultIds: []ResultId{id},
		Type:      OpGate,
		Gate:      fn,
	}})
	return newHandle(f, id)
}

// NewBatchGateOp schedules a gate that produces arity outputs from a single
// evaluation, returning one handle per output in order.
func (f *Fabric) NewBatchGateOp(args []ResultHandle, arity int, fn GateBatchFn) []ResultHandle {
	resultIds := make([]ResultId, arity)
	for i := range resultIds {
		resultIds[i] = f.allocateId()
	}
	f.enqueue(executorMessage{kind: jobOp, op: Operation{
		Id:        resultIds[0],
		Args:      idsOf(args),
		ResultIds: resultIds,
		Type:      OpGateBatch,
		GateBatch: fn,
	}})
	handles := make([]ResultHandle, arity)
	for i, id := range resultIds {
		handles[i] = newHandle(f, id)
	}
	return handles
}

// NewNetworkOp schedules a Network gate: fn derives a payload from args
// which is sent to the peer and also published as the local result.
func (f *Fabric) NewNetworkOp(args []ResultHandle, fn NetworkFn) ResultHandle {
	id := f.allocateId()
	f.enqueue(executorMessage{kind: jobOp, op: Operation{
		Id:        id,
		Args:      idsOf(args),
		ResultIds: []ResultId{id},
		Type:      OpNetwork,
		Network:   fn,
	}})
	return newHandle(f, id)
}

// ExchangeValue sends the value behind h to the peer and returns a handle
// to the peer's corresponding value. The send is a Network gate that
// forwards h's value verbatim; the receive is a bare id filled by the
// inbound network result. The king allocates send-then-receive and the
// other party receive-then-send, so each party's send id is the peer's
// receive id.
func (f *Fabric) ExchangeValue(h ResultHandle) ResultHandle {
	send := func() {
		f.NewNetworkOp([]ResultHandle{h}, func(args []ResultValue) ResultValue {
			return args[0]
		})
	}
	if f.partyId.King() {
		send()
		return newHandle(f, f.allocateId())
	}
	recv := newHandle(f, f.allocateId())
	send()
	return recv
}

// AuthTriple is a Beaver triple (a, b, c) with a*b=c, each component
// allocated as a scalar handle alongside a handle to this party's share of
// that component's MAC under alpha.
type AuthTriple struct {
	A, B, C          ScalarHandle
	AMac, BMac, CMac ScalarHandle
}

// NextAuthenticatedTriple draws a Beaver triple from the shared-value
// source and allocates each component and MAC share as a scalar handle.
// The source is solely responsible for MAC consistency across the two
// parties.
func (f *Fabric) NextAuthenticatedTriple() AuthTriple {
	t := f.valueSource.NextTriplet()
	return AuthTriple{
		A:    f.AllocateScalar(t.A),
		B:    f.AllocateScalar(t.B),
		C:    f.AllocateScalar(t.C),
		AMac: f.AllocateScalar(t.AMac),
		BMac: f.AllocateScalar(t.BMac),
		CMac: f.AllocateScalar(t.CMac),
	}
}

// AuthScalarPointTriple is the mixed-type analogue of AuthTriple for
// authenticated scalar-by-point multiplication.
type AuthScalarPointTriple struct {
	A, AMac ScalarHandle
	B, BMac PointHandle
	C, CMac PointHandle
}

// NextAuthenticatedScalarPointTriple draws a scalar-point Beaver triple from
// the shared-value source and allocates each component and MAC share as a
// handle.
func (f *Fabric) NextAuthenticatedScalarPointTriple() AuthScalarPointTriple {
	t := f.valueSource.NextScalarPointTriplet()
	return AuthScalarPointTriple{
		A:    f.AllocateScalar(t.A),
		AMac: f.AllocateScalar(t.AMac),
		B:    f.AllocatePoint(t.B),
		BMac: f.AllocatePoint(t.BMac),
		C:    f.AllocatePoint(t.C),
		CMac: f.AllocatePoint(t.CMac),
	}
}

// BorrowMacKey returns a handle to this party's share of the SPDZ MAC key
// alpha.
func (f *Fabric) BorrowMacKey() ScalarHandle {
	return f.AllocateScalar(f.macKeyShare)
}

// Shutdown enqueues a sentinel that terminates the executor and, if a
// transport is attached, tears down the network adapter. It wakes no
// outstanding waiters; handles whose results never arrive hang forever.
func (f *Fabric) Shutdown() {
	f.shutdownOnce.Do(func() {
		f.enqueue(executorMessage{kind: jobShutdown})
		f.wg.Wait()
		close(f.outbound)
		if f.network != nil {
			f.network.transport.Close()
		}
		f.logger.Infow("fabric shut down")
	})
}

func idsOf(handles []ResultHandle) []ResultId {
	ids := make([]ResultId, len(handles))
	for i, h := range handles {
		ids[i] = h.Id()
	}
	return ids
}
