package fabric

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/renegade-fi/mpc-stark/buffer"
)

// jobKind discriminates the messages the executor consumes from its job
// queue.
type jobKind uint8

const (
	jobResult jobKind = iota
	jobOp
	jobNewWaiter
	jobShutdown
)

type executorMessage struct {
	kind   jobKind
	result OpResult
	op     Operation
	waiter ResultWaiter
}

// Executor is the single-threaded cooperative loop that evaluates gates as
// their dependencies become ready. It owns the operation and dependency
// buffers exclusively; only it ever writes into the shared result store.
type Executor struct {
	jobQueue chan executorMessage

	operations   *buffer.Buffer[Operation]
	dependencies *buffer.Buffer[[]OperationId]
	waiters      map[ResultId][]ResultWaiter

	store    *resultStore
	outbound chan<- NetworkOutbound
	logger   *zap.SugaredLogger
}

func newExecutor(
	circuitSizeHint int,
	jobQueue chan executorMessage,
	store *resultStore,
	outbound chan<- NetworkOutbound,
	logger *zap.SugaredLogger,
) *Executor {
	return &Executor{
		jobQueue:     jobQueue,
		operations:   buffer.New[Operation](circuitSizeHint),
		dependencies: buffer.New[[]OperationId](circuitSizeHint),
		waiters:      make(map[ResultId][]ResultWaiter),
		store:        store,
		outbound:     outbound,
		logger:       logger,
	}
}

// Run drains the job queue until a Shutdown message arrives. It is meant
// to be run on its own goroutine; it never blocks on anything other than
// receiving from the job queue, since gate functions are assumed to be
// cheap pure computations over already-resolved inputs.
func (e *Executor) Run() {
	for {
		msg := <-e.jobQueue
		switch msg.kind {
		case jobResult:
			e.handleNewResult(msg.result)
		case jobOp:
			e.handleNewOperation(msg.op)
		case jobNewWaiter:
			e.handleNewWaiter(msg.waiter)
		case jobShutdown:
			e.logger.Debug("executor shutting down")
			return
		}
	}
}

func (e *Executor) handleNewResult(result OpResult) {
	id := result.Id
	if had := e.store.insert(id, result.Value); had {
		panic(&ProtocolViolation{Reason: fmt.Sprintf("duplicate result id: %d", id)})
	}

	if deps, ok := e.dependencies.Get(uint64(id)); ok {
		ready := make([]OperationId, 0, len(deps))
		for _, opId := range deps {
			op := e.operations.GetMut(uint64(opId))
			if op == nil {
				continue
			}
			op.InflightArgs--
			if op.InflightArgs == 0 {
				ready = append(ready, opId)
			}
		}
		for _, opId := range ready {
			op, ok := e.operations.Take(uint64(opId))
			if !ok {
				continue
			}
			e.executeOperation(op)
		}
	}

	e.wakeWaitersOnResult(id)
}

func (e *Executor) handleNewOperation(op Operation) {
	nReady := 0
	for _, argId := range op.Args {
		if _, ok := e.store.get(argId); ok {
			nReady++
		}
	}
	op.InflightArgs = len(op.Args) - nReady

	if op.InflightArgs == 0 {
		e.executeOperation(op)
		return
	}

	for _, argId := range op.Args {
		if _, ok := e.store.get(argId); ok {
			continue
		}
		entry := e.dependencies.EntryMut(uint64(argId))
		*entry = append(*entry, op.Id)
	}
	e.operations.Insert(uint64(op.Id), op)
}

func (e *Executor) executeOperation(op Operation) {
	inputs := make([]ResultValue, len(op.Args))
	for i, argId := range op.Args {
		v, ok := e.store.get(argId)
		if !ok {
			panic(&ProtocolViolation{Reason: fmt.Sprintf("operation %d executed before argument %d was ready", op.Id, argId)})
		}
		inputs[i] = v
	}

	switch op.Type {
	case OpGate:
		value := op.Gate(inputs)
		e.handleNewResult(OpResult{Id: op.ResultIds[0], Value: value})

	case OpGateBatch:
		outputs := op.GateBatch(inputs)
		if len(outputs) != len(op.ResultIds) {
			panic(&ProtocolViolation{Reason: fmt.Sprintf("gate batch %d produced %d outputs, expected %d", op.Id, len(outputs), len(op.ResultIds))})
		}
		for i, resultId := range op.ResultIds {
			e.handleNewResult(OpResult{Id: resultId, Value: outputs[i]})
		}

	case OpNetwork:
		resultId := op.ResultIds[0]
		payload := op.Network(inputs)
		e.outbound <- NetworkOutbound{ResultId: resultId, Payload: payload}
		// send-and-copy-locally: the sender's own half of the exchange is
		// exactly what it sent.
		e.handleNewResult(OpResult{Id: resultId, Value: payload})
	}
}

func (e *Executor) handleNewWaiter(waiter ResultWaiter) {
	id := waiter.ResultId
	e.waiters[id] = append(e.waiters[id], waiter)
	if _, ok := e.store.get(id); ok {
		e.wakeWaitersOnResult(id)
	}
}

func (e *Executor) wakeWaitersOnResult(id ResultId) {
	waiters, ok := e.waiters[id]
	if !ok {
		return
	}
	delete(e.waiters, id)

	value, _ := e.store.get(id)
	for _, w := range waiters {
		w.Ch <- value
	}
}
