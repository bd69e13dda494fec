package fabric

import (
	"github.com/renegade-fi/mpc-stark/algebra"
	"github.com/renegade-fi/mpc-stark/beaver"
)

// NewPairedTestFabrics wires two in-process fabrics together over an
// in-memory transport, each drawing from a mutually-consistent dummy
// Beaver source, and returns the fabrics plus the two halves of the shared
// MAC key alpha they were built with. It exists to drive the two-party
// protocol in tests without a real network; production callers construct a
// Fabric directly via New.
func NewPairedTestFabrics(triplesCapacity int) (fab0, fab1 *Fabric, alpha0, alpha1 algebra.Scalar) {
	alpha0 = algebra.RandomScalar()
	alpha1 = algebra.RandomScalar()
	source0, source1 := beaver.NewPairedDummySource(triplesCapacity, alpha0, alpha1)

	transport0, transport1 := NewInMemoryTransportPair(64)

	fab0 = New(Config{
		PartyId:     Party0,
		MacKeyShare: alpha0,
		ValueSource: source0,
		Transport:   transport0,
	})
	fab1 = New(Config{
		PartyId:     Party1,
		MacKeyShare: alpha1,
		ValueSource: source1,
		Transport:   transport1,
	})
	return fab0, fab1, alpha0, alpha1
}
