package auth

import (
	"github.com/renegade-fi/mpc-stark/algebra"
	"github.com/renegade-fi/mpc-stark/fabric"
	"github.com/renegade-fi/mpc-stark/mpc"
)

// AuthenticatedPoint is the group-valued analogue of AuthenticatedScalar: a
// share of a curve point plus a share of its point-valued MAC alpha*P.
type AuthenticatedPoint struct {
	Share          mpc.Point
	Mac            mpc.Point
	PublicModifier algebra.Point
}

// NewAuthenticatedPoint wraps existing share and mac shares with a zero
// (identity) public modifier.
func NewAuthenticatedPoint(share, mac mpc.Point) AuthenticatedPoint {
	return AuthenticatedPoint{Share: share, Mac: mac, PublicModifier: algebra.Identity()}
}

// Fab returns the fabric this value's share is scheduled against.
func (p AuthenticatedPoint) Fab() *fabric.Fabric { return p.Share.Fab }

// Add returns the sum of two authenticated point shares.
func (p AuthenticatedPoint) Add(other AuthenticatedPoint) AuthenticatedPoint {
	return AuthenticatedPoint{
		Share:          p.Share.Add(other.Share),
		Mac:            p.Mac.Add(other.Mac),
		PublicModifier: p.PublicModifier.Add(other.PublicModifier),
	}
}

// AddPublic adds a public point c, symmetric to AuthenticatedScalar.AddPublic.
func (p AuthenticatedPoint) AddPublic(c algebra.Point) AuthenticatedPoint {
	return AuthenticatedPoint{
		Share:          p.Share.AddPublic(c),
		Mac:            p.Mac,
		PublicModifier: p.PublicModifier.Add(c),
	}
}

// SubPublic subtracts a public point c, symmetric to AddPublic.
func (p AuthenticatedPoint) SubPublic(c algebra.Point) AuthenticatedPoint {
	return AuthenticatedPoint{
		Share:          p.Share.SubPublic(c),
		Mac:            p.Mac,
		PublicModifier: p.PublicModifier.Sub(c),
	}
}

// Sub returns the difference of two authenticated point shares: shares,
// macs, and public modifiers each subtract independently, as in
// AuthenticatedScalar.Sub.
func (p AuthenticatedPoint) Sub(other AuthenticatedPoint) AuthenticatedPoint {
	return AuthenticatedPoint{
		Share:          p.Share.Sub(other.Share),
		Mac:            p.Mac.Sub(other.Mac),
		PublicModifier: p.PublicModifier.Sub(other.PublicModifier),
	}
}

// Neg negates the share, the mac, and the public modifier, as in
// AuthenticatedScalar.Neg.
func (p AuthenticatedPoint) Neg() AuthenticatedPoint {
	return AuthenticatedPoint{
		Share:          p.Share.Neg(),
		Mac:            p.Mac.Neg(),
		PublicModifier: p.PublicModifier.Neg(),
	}
}

// MulPublicScalar multiplies by a public scalar: share, mac, and modifier
// all scale uniformly.
func (p AuthenticatedPoint) MulPublicScalar(c algebra.Scalar) AuthenticatedPoint {
	return AuthenticatedPoint{
		Share:          p.Share.MulPublicScalar(c),
		Mac:            p.Mac.MulPublicScalar(c),
		PublicModifier: p.PublicModifier.ScalarMul(c),
	}
}
