package cmp

// SliceEq is true when a and b have the same elements in the same order.
func SliceEq[T comparable](a []T, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for nth, va := range a {
		if va != b[nth] {
			return false
		}
	}
	return true
}

// SliceEqWith compares a and b element-wise with pred.
func SliceEqWith[T any, U any](a []T, b []U, pred func(a T, b U) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for nth := range a {
		if !pred(a[nth], b[nth]) {
			return false
		}
	}
	return true
}

// SliceContentEq is true when a and b have the same elements,
// ignoring ordering (multiplicity matters).
func SliceContentEq[T comparable](a []T, b []T) bool {
	if len(a) != len(b) {
		return false
	}

	rest := make([]*T, len(b))
	for nth := range b {
		rest[nth] = &b[nth]
	}

NEXT_A:
	for _, va := range a {
		for nth, vb := range rest {
			if vb == nil || *vb != va {
				continue
			}
			rest[nth] = nil
			continue NEXT_A
		}
		return false
	}
	return true
}

// MapEq is true when a and b have the same key set with equal values.
func MapEq[K comparable, V comparable](a map[K]V, b map[K]V) bool {
	return MapEqWith(a, b, func(x, y V) bool { return x == y })
}

// MapEqWith compares a and b with pred over values of the same key.
func MapEqWith[K comparable, V any](a map[K]V, b map[K]V, pred func(a V, b V) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		vb, ok := b[k]
		if !ok || !pred(va, vb) {
			return false
		}
	}
	return true
}
