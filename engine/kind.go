// SPDX-License-Identifier: MIT

package engine

import (
	"fmt"
	"strings"
)

// Kind selects the operator whose matrix elements are computed.
type Kind int

const (
	// KindInner is the inner product (Gram matrix).
	KindInner Kind = iota
	// KindMass is the invariant-mass operator.
	KindMass
	// KindKinetic is the kinetic operator; its continuum element equals the
	// inner product and its μ dependence enters through the kinetic Mu block.
	KindKinetic
	// KindSameN is the particle-number-conserving interaction.
	KindSameN
	// KindNPlus2 is the interaction between n and n+2 particles.
	KindNPlus2
)

var kindNames = [...]string{"inner", "mass", "kinetic", "same-n", "n-plus-2"}

// String returns the lower-case kind name used by configuration and logs.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}

	return kindNames[k]
}

// ParseKind maps a kind name (case-insensitive) back to a Kind.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range kindNames {
		if s == name {
			return Kind(i), nil
		}
	}

	return 0, engineErrorf("ParseKind", fmt.Errorf("%q: %w", s, ErrUnknownKind))
}

// direct reports whether the kind reduces to a scalar per monomial pair.
func (k Kind) direct() bool {
	return k == KindInner || k == KindMass || k == KindKinetic
}

func (k Kind) valid() bool { return k >= 0 && int(k) < len(kindNames) }
