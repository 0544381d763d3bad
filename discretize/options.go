// SPDX-License-Identifier: MIT

package discretize

// DefaultOrder is the number of Gauss–Legendre nodes per axis and window.
const DefaultOrder = 32

const panicOrderInvalid = "discretize: WithOrder: order must be >= 1"

// Option configures a Discretizer.
type Option func(*options)

type options struct {
	order int
}

// WithOrder sets the quadrature order. Panics if order < 1.
func WithOrder(order int) Option {
	if order < 1 {
		panic(panicOrderInvalid)
	}

	return func(o *options) { o.order = order }
}

func gatherOptions(opts ...Option) options {
	o := options{order: DefaultOrder}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
