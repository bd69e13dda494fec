package fabric

// OperationType distinguishes the three gate shapes the executor knows how
// to evaluate.
type OperationType uint8

const (
	// OpGate is a pure function (inputs) -> value, executed locally.
	OpGate OperationType = iota
	// OpGateBatch is a pure function (inputs) -> sequence of values; it must
	// produce exactly as many outputs as the operation has result ids.
	OpGateBatch
	// OpNetwork is a pure function (inputs) -> payload. The payload is
	// queued for the peer and simultaneously published as the local
	// result: send-and-copy-locally.
	OpNetwork
)

// GateFn computes a single output value from resolved input values.
type GateFn func(args []ResultValue) ResultValue

// GateBatchFn computes |ResultIds| output values from resolved input
// values, in order.
type GateBatchFn func(args []ResultValue) []ResultValue

// NetworkFn derives the outbound network payload from resolved input
// values.
type NetworkFn func(args []ResultValue) ResultValue

// Operation is a scheduled gate: an ordered sequence of argument ids, one
// or more result ids, and the function to evaluate once every argument is
// resolved. InflightArgs is scratch space owned exclusively by the
// executor.
type Operation struct {
	Id           OperationId
	Args         []ResultId
	ResultIds    []ResultId
	Type         OperationType
	Gate         GateFn
	GateBatch    GateBatchFn
	Network      NetworkFn
	InflightArgs int
}
