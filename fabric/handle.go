package fabric

import "github.com/renegade-fi/mpc-stark/algebra"

// ResultHandle is a lazy, ownership-neutral handle over a ResultId. It is
// cheap to copy: every copy shares the same non-owning reference to the
// fabric, which outlives all handles.
type ResultHandle struct {
	id     ResultId
	fabric *Fabric
}

func newHandle(fab *Fabric, id ResultId) ResultHandle {
	return ResultHandle{id: id, fabric: fab}
}

// Id returns the identifier this handle resolves.
func (h ResultHandle) Id() ResultId { return h.id }

// Fabric returns the fabric this handle is bound to.
func (h ResultHandle) Fabric() *Fabric { return h.fabric }

// Poll performs a non-blocking read of the result. It returns (value, true)
// if the executor has already published a result, or (zero value, false)
// otherwise.
func (h ResultHandle) Poll() (ResultValue, bool) {
	return h.fabric.store.get(h.id)
}

// Await blocks the calling goroutine until the executor publishes this
// handle's result, then returns it. This is the only user-visible
// suspension point in the system; there is no cancellation or timeout, so
// awaiting a result that will never arrive hangs forever.
func (h ResultHandle) Await() ResultValue {
	if v, ok := h.Poll(); ok {
		return v
	}
	ch := make(chan ResultValue, 1)
	h.fabric.enqueue(executorMessage{
		kind:   jobNewWaiter,
		waiter: ResultWaiter{ResultId: h.id, Ch: ch},
	})
	return <-ch
}

// ScalarHandle is a ResultHandle that is expected to resolve to a scalar.
type ScalarHandle struct{ ResultHandle }

// Await resolves the handle and downcasts to a scalar, panicking (a fatal
// internal error) if the published value carries a different kind.
func (h ScalarHandle) Await() algebra.Scalar {
	v, err := h.ResultHandle.Await().AsScalar()
	if err != nil {
		panic(err)
	}
	return v
}

// PointHandle is a ResultHandle that is expected to resolve to a curve
// point.
type PointHandle struct{ ResultHandle }

// Await resolves the handle and downcasts to a point.
func (h PointHandle) Await() algebra.Point {
	v, err := h.ResultHandle.Await().AsPoint()
	if err != nil {
		panic(err)
	}
	return v
}

// ScalarBatchHandle is a ResultHandle that is expected to resolve to a
// batch of scalars.
type ScalarBatchHandle struct{ ResultHandle }

// Await resolves the handle and downcasts to a scalar batch.
func (h ScalarBatchHandle) Await() []algebra.Scalar {
	v, err := h.ResultHandle.Await().AsScalarBatch()
	if err != nil {
		panic(err)
	}
	return v
}

// PointBatchHandle is a ResultHandle that is expected to resolve to a batch
// of curve points.
type PointBatchHandle struct{ ResultHandle }

// Await resolves the handle and downcasts to a point batch.
func (h PointBatchHandle) Await() []algebra.Point {
	v, err := h.ResultHandle.Await().AsPointBatch()
	if err != nil {
		panic(err)
	}
	return v
}

func asScalarHandle(h ResultHandle) ScalarHandle           { return ScalarHandle{h} }
func asPointHandle(h ResultHandle) PointHandle             { return PointHandle{h} }
func asScalarBatchHandle(h ResultHandle) ScalarBatchHandle { return ScalarBatchHandle{h} }
func asPointBatchHandle(h ResultHandle) PointBatchHandle   { return PointBatchHandle{h} }
