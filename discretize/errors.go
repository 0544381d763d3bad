// SPDX-License-Identifier: MIT

package discretize

import (
	"errors"
	"fmt"
)

var (
	// ErrBadPartitions is returned for a non-positive partition count.
	ErrBadPartitions = errors.New("discretize: partitions must be > 0")

	// ErrBadExponent is returned for r < -1.
	ErrBadExponent = errors.New("discretize: exponent out of range")
)

func discretizeErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
