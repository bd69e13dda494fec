package fabric

import (
	"go.uber.org/zap"

	pkgerrors "github.com/pkg/errors"
)

// Transport is the abstract full-duplex reliable channel the network
// adapter drives. The concrete transport (TCP, QUIC, an in-process pipe,
// ...) is out of scope for this module; only this interface is relied on.
type Transport interface {
	// Send delivers one wire-encoded message to the peer.
	Send(msg []byte) error
	// Recv blocks until one wire-encoded message has arrived from the
	// peer, or the transport is closed.
	Recv() ([]byte, error)
	// Close tears down the transport. Idempotent.
	Close() error
}

// NetworkAdapter runs the two long-lived network tasks described in spec
// §4.4/§5: an outbound drainer that serializes from the fabric's outbound
// queue onto the transport, and an inbound receiver that injects each
// arriving message back into the executor's job queue as a Result.
//
// Failure of either task ends that task: the adapter reports it through
// errCh, which the owning fabric exposes as Fabric.NetworkErrors. The
// fabric does not shut itself down on such an error.
type NetworkAdapter struct {
	transport Transport
	outbound  <-chan NetworkOutbound
	jobQueue  chan<- executorMessage
	logger    *zap.SugaredLogger
	errCh     chan error
}

func newNetworkAdapter(
	transport Transport,
	outbound <-chan NetworkOutbound,
	jobQueue chan<- executorMessage,
	logger *zap.SugaredLogger,
) *NetworkAdapter {
	return &NetworkAdapter{
		transport: transport,
		outbound:  outbound,
		jobQueue:  jobQueue,
		logger:    logger,
		errCh:     make(chan error, 2),
	}
}

// Run starts the outbound drainer and inbound receiver goroutines. It
// returns immediately; fatal transport errors are reported on the returned
// channel.
func (a *NetworkAdapter) Run() <-chan error {
	go a.drainOutbound()
	go a.receiveInbound()
	return a.errCh
}

func (a *NetworkAdapter) drainOutbound() {
	for out := range a.outbound {
		msg, err := EncodeWireMessage(out)
		if err != nil {
			a.reportFatal(pkgerrors.Wrap(err, "encoding outbound message"))
			return
		}
		if err := a.transport.Send(msg); err != nil {
			a.reportFatal(pkgerrors.Wrap(err, "sending outbound message"))
			return
		}
		a.logger.Debugw("sent network payload", "result_id", out.ResultId)
	}
}

func (a *NetworkAdapter) receiveInbound() {
	for {
		msg, err := a.transport.Recv()
		if err != nil {
			a.reportFatal(pkgerrors.Wrap(err, "receiving inbound message"))
			return
		}
		out, err := DecodeWireMessage(msg)
		if err != nil {
			a.reportFatal(pkgerrors.Wrap(err, "decoding inbound message"))
			return
		}
		a.logger.Debugw("received network payload", "result_id", out.ResultId)
		a.jobQueue <- executorMessage{
			kind:   jobResult,
			result: OpResult{Id: out.ResultId, Value: out.Payload},
		}
	}
}

func (a *NetworkAdapter) reportFatal(err error) {
	netErr := &NetworkError{Reason: "network adapter failure", Cause: err}
	a.logger.Errorw("network adapter failed", "error", netErr)
	select {
	case a.errCh <- netErr:
	default:
	}
}
