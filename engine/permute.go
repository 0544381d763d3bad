// SPDX-License-Identifier: MIT

package engine

// NextArrangement advances k in place to the next distinct particle
// arrangement in ascending lexicographic order, where particle slots are
// compared by x first and by y on ties. The x and y halves move together.
//
// MAIN DESCRIPTION:
//   - Classical next-permutation over paired slots: find the rightmost
//     pivot i with slot(i) < slot(i+1), the rightmost j > i with
//     slot(i) < slot(j), swap slots i and j, then reverse both halves over
//     the window (i, half).
//   - When k is already the largest arrangement it is reset to the smallest
//     one (both halves reversed) and false is returned.
//   - Keys with a single slot (length 2) have no other arrangement and return
//     false unchanged.
//
// Behavior highlights:
//   - Equal slots are never swapped with each other, so every distinct
//     arrangement is visited exactly once per cycle.
//
// Errors:
//   - ErrMalformedKey for an empty or odd-length key.
//
// Complexity:
//   - Time O(n) per call, Space O(1).
func NextArrangement(k Key) (bool, error) {
	if err := k.validate("NextArrangement"); err != nil {
		return false, err
	}
	half := len(k) / 2
	if half < 2 {
		return false, nil
	}
	x, y := k[:half], k[half:]
	less := func(i, j int) bool {
		return x[i] < x[j] || (x[i] == x[j] && y[i] < y[j])
	}

	i := half - 2
	for i >= 0 && !less(i, i+1) {
		i--
	}
	if i < 0 {
		reverseInts(x)
		reverseInts(y)
		return false, nil
	}
	j := half - 1
	for !less(i, j) {
		j--
	}
	x[i], x[j] = x[j], x[i]
	y[i], y[j] = y[j], y[i]
	reverseInts(x[i+1:])
	reverseInts(y[i+1:])

	return true, nil
}

// forEachArrangement calls fn once for every distinct arrangement of k,
// starting with k's own order and stopping when the cycle returns to it.
// fn receives a scratch key that is only valid during the call.
func forEachArrangement(k Key, fn func(Key) error) error {
	if err := k.validate("forEachArrangement"); err != nil {
		return err
	}
	cur := k.Clone()
	for {
		if err := fn(cur); err != nil {
			return err
		}
		if _, err := NextArrangement(cur); err != nil {
			return err
		}
		if cur.Equal(k) {
			return nil
		}
	}
}

func reverseInts(s []int) {
	for l, r := 0, len(s)-1; l < r; l, r = l+1, r-1 {
		s[l], s[r] = s[r], s[l]
	}
}
