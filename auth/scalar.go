// Package auth implements the SPDZ authenticated sharing layer: additive
// shares of scalars and curve points carrying an information-theoretic MAC
// under the session's shared key alpha, Beaver-triple multiplication, and
// the commit-then-reveal authenticated open.
package auth

import (
	"github.com/renegade-fi/mpc-stark/algebra"
	"github.com/renegade-fi/mpc-stark/fabric"
	"github.com/renegade-fi/mpc-stark/mpc"
)

// AuthenticatedScalar is an additive share of a field element together with
// an additive share of its MAC under alpha. PublicModifier tracks a net
// public constant folded into Share by a public operation but not yet
// reflected in Mac; the authenticated open applies the correction once, as
// alpha*PublicModifier, instead of scheduling a multiply gate per public op.
type AuthenticatedScalar struct {
	Share          mpc.Scalar
	Mac            mpc.Scalar
	PublicModifier algebra.Scalar
}

// NewAuthenticatedScalar wraps existing share and mac shares with a zero
// public modifier.
func NewAuthenticatedScalar(share, mac mpc.Scalar) AuthenticatedScalar {
	return AuthenticatedScalar{Share: share, Mac: mac, PublicModifier: algebra.ScalarZero()}
}

// Fab returns the fabric this value's share is scheduled against.
func (s AuthenticatedScalar) Fab() *fabric.Fabric { return s.Share.Fab }

// Add returns the sum of two authenticated shares: shares, macs, and public
// modifiers each add independently.
func (s AuthenticatedScalar) Add(other AuthenticatedScalar) AuthenticatedScalar {
	return AuthenticatedScalar{
		Share:          s.Share.Add(other.Share),
		Mac:            s.Mac.Add(other.Mac),
		PublicModifier: s.PublicModifier.Add(other.PublicModifier),
	}
}

// AddPublic adds a public constant c: the king folds c into its own share,
// and the modifier accumulates c so the MAC check can apply alpha*c once at
// open time.
func (s AuthenticatedScalar) AddPublic(c algebra.Scalar) AuthenticatedScalar {
	return AuthenticatedScalar{
		Share:          s.Share.AddPublic(c),
		Mac:            s.Mac,
		PublicModifier: s.PublicModifier.Add(c),
	}
}

// SubPublic subtracts a public constant, symmetric to AddPublic.
func (s AuthenticatedScalar) SubPublic(c algebra.Scalar) AuthenticatedScalar {
	return AuthenticatedScalar{
		Share:          s.Share.SubPublic(c),
		Mac:            s.Mac,
		PublicModifier: s.PublicModifier.Sub(c),
	}
}

// Sub returns the difference of two authenticated shares: shares, macs, and
// public modifiers each subtract independently (see DESIGN.md).
func (s AuthenticatedScalar) Sub(other AuthenticatedScalar) AuthenticatedScalar {
	return AuthenticatedScalar{
		Share:          s.Share.Sub(other.Share),
		Mac:            s.Mac.Sub(other.Mac),
		PublicModifier: s.PublicModifier.Sub(other.PublicModifier),
	}
}

// Neg negates the share, the mac, and the public modifier.
func (s AuthenticatedScalar) Neg() AuthenticatedScalar {
	return AuthenticatedScalar{
		Share:          s.Share.Neg(),
		Mac:            s.Mac.Neg(),
		PublicModifier: s.PublicModifier.Neg(),
	}
}

// MulPublic multiplies by a public constant: share, mac, and modifier all
// scale uniformly.
func (s AuthenticatedScalar) MulPublic(c algebra.Scalar) AuthenticatedScalar {
	return AuthenticatedScalar{
		Share:          s.Share.MulPublic(c),
		Mac:            s.Mac.MulPublic(c),
		PublicModifier: s.PublicModifier.Mul(c),
	}
}
