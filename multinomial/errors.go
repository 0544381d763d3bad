// SPDX-License-Identifier: MIT

package multinomial

import (
	"errors"
	"fmt"
)

var (
	// ErrNegative is returned for negative orders, part counts or parts.
	ErrNegative = errors.New("multinomial: negative argument")

	// ErrPartition signals an m-vector or partition that does not match the
	// requested part count or whose parts do not sum to its order.
	ErrPartition = errors.New("multinomial: malformed partition")
)

func multinomialErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
