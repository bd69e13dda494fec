package auth

import (
	"fmt"

	"github.com/renegade-fi/mpc-stark/algebra"
	"github.com/renegade-fi/mpc-stark/fabric"
	"github.com/renegade-fi/mpc-stark/mpc"
)

// MultiplyScalars computes the authenticated product of x and y using a
// fresh Beaver triple drawn from the fabric's shared-value source. With
// d = x-a and e = y-b opened and MAC-checked, x*y = c + d*b + e*a + d*e.
func MultiplyScalars(fab *fabric.Fabric, x, y AuthenticatedScalar) (AuthenticatedScalar, error) {
	triple := fab.NextAuthenticatedTriple()
	a := NewAuthenticatedScalar(mpc.NewSharedScalar(fab, triple.A), mpc.NewSharedScalar(fab, triple.AMac))
	b := NewAuthenticatedScalar(mpc.NewSharedScalar(fab, triple.B), mpc.NewSharedScalar(fab, triple.BMac))
	c := NewAuthenticatedScalar(mpc.NewSharedScalar(fab, triple.C), mpc.NewSharedScalar(fab, triple.CMac))

	d, err := OpenScalar(x.Sub(a)).Await()
	if err != nil {
		return AuthenticatedScalar{}, fmt.Errorf("auth: opening beaver mask for scalar multiplication: %w", err)
	}
	e, err := OpenScalar(y.Sub(b)).Await()
	if err != nil {
		return AuthenticatedScalar{}, fmt.Errorf("auth: opening beaver mask for scalar multiplication: %w", err)
	}

	result := c.Add(b.MulPublic(d)).Add(a.MulPublic(e)).AddPublic(d.Mul(e))
	return result, nil
}

// ScalarTimesPublicPoint multiplies a public curve point by an authenticated
// scalar, scaling the share, mac, and pending public modifier uniformly.
func ScalarTimesPublicPoint(s AuthenticatedScalar, q algebra.Point) AuthenticatedPoint {
	return AuthenticatedPoint{
		Share:          s.Share.MulPoint(q),
		Mac:            s.Mac.MulPoint(q),
		PublicModifier: q.ScalarMul(s.PublicModifier),
	}
}

// MultiplyScalarPoint computes the authenticated product of a scalar s and a
// point p using a scalar-point Beaver triple (a, B, C) with a*B = C: with
// d = s-a opened (a scalar) and e = p-B opened (a point), s*p =
// C + d*B + a*e + d*e.
func MultiplyScalarPoint(fab *fabric.Fabric, s AuthenticatedScalar, p AuthenticatedPoint) (AuthenticatedPoint, error) {
	triple := fab.NextAuthenticatedScalarPointTriple()
	a := NewAuthenticatedScalar(mpc.NewSharedScalar(fab, triple.A), mpc.NewSharedScalar(fab, triple.AMac))
	b := NewAuthenticatedPoint(mpc.NewSharedPoint(fab, triple.B), mpc.NewSharedPoint(fab, triple.BMac))
	c := NewAuthenticatedPoint(mpc.NewSharedPoint(fab, triple.C), mpc.NewSharedPoint(fab, triple.CMac))

	d, err := OpenScalar(s.Sub(a)).Await()
	if err != nil {
		return AuthenticatedPoint{}, fmt.Errorf("auth: opening beaver mask for scalar-point multiplication: %w", err)
	}
	e, err := OpenPoint(p.Sub(b)).Await()
	if err != nil {
		return AuthenticatedPoint{}, fmt.Errorf("auth: opening beaver mask for scalar-point multiplication: %w", err)
	}

	result := c.Add(b.MulPublicScalar(d)).Add(ScalarTimesPublicPoint(a, e)).AddPublic(e.ScalarMul(d))
	return result, nil
}
