package beaver

import "github.com/renegade-fi/mpc-stark/algebra"

// dummySource hands out a pre-generated queue of correlated randomness. It
// implements SharedValueSource for exactly one party; NewPairedDummySource
// builds the two complementary queues a real two-party run would need.
type dummySource struct {
	bits               []algebra.Scalar
	values             []algebra.Scalar
	inverses           []InversePair
	triplets           []Triplet
	scalarPointTriples []ScalarPointTriplet
}

// NewPairedDummySource returns two SharedValueSource implementations, one
// per party, that are mutually consistent: every bit, value, inverse pair,
// and Beaver triple drawn from party0Source and party1Source at the same
// call index reconstructs to an honestly-generated secret, and every
// triple's A/B/C components carry matching MAC shares under the supplied
// alpha key shares. This stands in for the real (out-of-scope) preprocessing
// source in tests and end-to-end scenarios.
func NewPairedDummySource(capacity int, alpha0, alpha1 algebra.Scalar) (party0Source, party1Source SharedValueSource) {
	alpha := alpha0.Add(alpha1)
	p0 := &dummySource{}
	p1 := &dummySource{}

	for i := 0; i < capacity; i++ {
		bit := algebra.NewScalarFromUint64(uint64(i % 2))
		bit0, bit1 := splitShare(bit)
		p0.bits = append(p0.bits, bit0)
		p1.bits = append(p1.bits, bit1)

		value := algebra.RandomScalar()
		v0, v1 := splitShare(value)
		p0.values = append(p0.values, v0)
		p1.values = append(p1.values, v1)

		x := algebra.RandomScalar()
		for x.IsZero() {
			x = algebra.RandomScalar()
		}
		xInv := x.Inverse()
		x0, x1 := splitShare(x)
		xInv0, xInv1 := splitShare(xInv)
		p0.inverses = append(p0.inverses, InversePair{Value: x0, Inverse: xInv0})
		p1.inverses = append(p1.inverses, InversePair{Value: x1, Inverse: xInv1})

		a := algebra.RandomScalar()
		b := algebra.RandomScalar()
		c := a.Mul(b)
		a0, a1 := splitShare(a)
		b0, b1 := splitShare(b)
		c0, c1 := splitShare(c)

		aMac0, aMac1 := splitShare(alpha.Mul(a))
		bMac0, bMac1 := splitShare(alpha.Mul(b))
		cMac0, cMac1 := splitShare(alpha.Mul(c))

		p0.triplets = append(p0.triplets, Triplet{A: a0, B: b0, C: c0, AMac: aMac0, BMac: bMac0, CMac: cMac0})
		p1.triplets = append(p1.triplets, Triplet{A: a1, B: b1, C: c1, AMac: aMac1, BMac: bMac1, CMac: cMac1})

		spA := algebra.RandomScalar()
		spB := algebra.Generator().ScalarMul(algebra.RandomScalar())
		spC := spB.ScalarMul(spA)
		spA0, spA1 := splitShare(spA)
		spB0, spB1 := splitSharePoint(spB)
		spC0, spC1 := splitSharePoint(spC)

		spAMac0, spAMac1 := splitShare(alpha.Mul(spA))
		spBMac0, spBMac1 := splitSharePoint(spB.ScalarMul(alpha))
		spCMac0, spCMac1 := splitSharePoint(spC.ScalarMul(alpha))

		p0.scalarPointTriples = append(p0.scalarPointTriples, ScalarPointTriplet{
			A: spA0, AMac: spAMac0, B: spB0, BMac: spBMac0, C: spC0, CMac: spCMac0,
		})
		p1.scalarPointTriples = append(p1.scalarPointTriples, ScalarPointTriplet{
			A: spA1, AMac: spAMac1, B: spB1, BMac: spBMac1, C: spC1, CMac: spCMac1,
		})
	}

	return p0, p1
}

func splitShare(v algebra.Scalar) (share0, share1 algebra.Scalar) {
	share0 = algebra.RandomScalar()
	share1 = v.Sub(share0)
	return share0, share1
}

func splitSharePoint(v algebra.Point) (share0, share1 algebra.Point) {
	share0 = algebra.Generator().ScalarMul(algebra.RandomScalar())
	share1 = v.Sub(share0)
	return share0, share1
}

func (s *dummySource) pop(queue *[]algebra.Scalar) algebra.Scalar {
	if len(*queue) == 0 {
		panic("beaver: dummy source exhausted, increase capacity")
	}
	v := (*queue)[0]
	*queue = (*queue)[1:]
	return v
}

func (s *dummySource) NextSharedBit() algebra.Scalar { return s.pop(&s.bits) }

func (s *dummySource) NextSharedBitBatch(n int) []algebra.Scalar {
	out := make([]algebra.Scalar, n)
	for i := range out {
		out[i] = s.NextSharedBit()
	}
	return out
}

func (s *dummySource) NextSharedValue() algebra.Scalar { return s.pop(&s.values) }

func (s *dummySource) NextSharedValueBatch(n int) []algebra.Scalar {
	out := make([]algebra.Scalar, n)
	for i := range out {
		out[i] = s.NextSharedValue()
	}
	return out
}

func (s *dummySource) NextSharedInversePair() (algebra.Scalar, algebra.Scalar) {
	if len(s.inverses) == 0 {
		panic("beaver: dummy source exhausted, increase capacity")
	}
	p := s.inverses[0]
	s.inverses = s.inverses[1:]
	return p.Value, p.Inverse
}

func (s *dummySource) NextSharedInversePairBatch(n int) []InversePair {
	out := make([]InversePair, n)
	for i := range out {
		v, inv := s.NextSharedInversePair()
		out[i] = InversePair{Value: v, Inverse: inv}
	}
	return out
}

func (s *dummySource) NextTriplet() Triplet {
	if len(s.triplets) == 0 {
		panic("beaver: dummy source exhausted, increase capacity")
	}
	t := s.triplets[0]
	s.triplets = s.triplets[1:]
	return t
}

func (s *dummySource) NextTripletBatch(n int) []Triplet {
	out := make([]Triplet, n)
	for i := range out {
		out[i] = s.NextTriplet()
	}
	return out
}

func (s *dummySource) NextScalarPointTriplet() ScalarPointTriplet {
	if len(s.scalarPointTriples) == 0 {
		panic("beaver: dummy source exhausted, increase capacity")
	}
	t := s.scalarPointTriples[0]
	s.scalarPointTriples = s.scalarPointTriples[1:]
	return t
}

func (s *dummySource) NextScalarPointTripletBatch(n int) []ScalarPointTriplet {
	out := make([]ScalarPointTriplet, n)
	for i := range out {
		out[i] = s.NextScalarPointTriplet()
	}
	return out
}
