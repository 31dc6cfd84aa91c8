package cmp_test

import (
	"testing"

	"github.com/autoserve/autoserve/pkg/utils/cmp"
)

func TestSliceEq(t *testing.T) {
	t.Run("equal slices are equal", func(t *testing.T) {
		if !cmp.SliceEq([]string{"a", "b"}, []string{"a", "b"}) {
			t.Error("slices are not equal, unexpectedly")
		}
	})
	t.Run("different content is not equal", func(t *testing.T) {
		if cmp.SliceEq([]string{"a", "b"}, []string{"a", "c"}) {
			t.Error("slices are equal, unexpectedly")
		}
	})
	t.Run("different length is not equal", func(t *testing.T) {
		if cmp.SliceEq([]string{"a", "b"}, []string{"a"}) {
			t.Error("slices are equal, unexpectedly")
		}
	})
}

func TestSliceContentEq(t *testing.T) {
	t.Run("ordering does not matter", func(t *testing.T) {
		if !cmp.SliceContentEq([]int{1, 2, 3}, []int{3, 1, 2}) {
			t.Error("slices are not equal, unexpectedly")
		}
	})
	t.Run("multiplicity matters", func(t *testing.T) {
		if cmp.SliceContentEq([]int{1, 2, 2}, []int{1, 1, 2}) {
			t.Error("slices are equal, unexpectedly")
		}
	})
}

func TestMapEq(t *testing.T) {
	t.Run("equal maps are equal", func(t *testing.T) {
		a := map[string]int{"x": 1, "y": 2}
		b := map[string]int{"y": 2, "x": 1}
		if !cmp.MapEq(a, b) {
			t.Error("maps are not equal, unexpectedly")
		}
	})
	t.Run("missing key is not equal", func(t *testing.T) {
		a := map[string]int{"x": 1, "y": 2}
		b := map[string]int{"x": 1, "z": 2}
		if cmp.MapEq(a, b) {
			t.Error("maps are equal, unexpectedly")
		}
	})
}
