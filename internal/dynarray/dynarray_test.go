package dynarray

import "testing"

func TestAppendGrowth(t *testing.T) {
	a := New[int]()
	for i := 0; i < 100; i++ {
		a.Append(i)
	}
	if a.Len() != 100 {
		t.Fatalf("Len() = %d, want 100", a.Len())
	}
	for i := 0; i < 100; i++ {
		if a.At(i) != i {
			t.Errorf("At(%d) = %d, want %d", i, a.At(i), i)
		}
	}
}

func TestInitialCapacityDoesNotShrink(t *testing.T) {
	a := New[int]()
	for i := 0; i < 20; i++ {
		a.Append(i)
	}
	a.SetLength(3)
	if a.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", a.Len())
	}
	// Growing back within old capacity must not lose data beyond length 3,
	// and must not panic — capacity was never released on shrink.
	a.SetLength(20)
	if a.At(19) != 19 {
		t.Errorf("At(19) after shrink+regrow = %d, want 19 (capacity must persist)", a.At(19))
	}
}

func TestInsertAndRemove(t *testing.T) {
	a := FromSlice([]string{"a", "b", "d"})
	a.InsertAt(2, "c")
	got := a.Slice()
	want := []string{"a", "b", "c", "d"}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("Slice() = %v, want %v", got, want)
		}
	}

	a.RemoveAt(0)
	got = a.Slice()
	want = []string{"b", "c", "d"}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("Slice() after RemoveAt(0) = %v, want %v", got, want)
		}
	}
}

func TestRemoveAtSwap(t *testing.T) {
	a := FromSlice([]int{1, 2, 3, 4})
	a.RemoveAtSwap(0)
	if a.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", a.Len())
	}
	if a.At(0) != 4 {
		t.Errorf("RemoveAtSwap(0) should move the last element into slot 0, got %d", a.At(0))
	}
}

func TestRetainRelease(t *testing.T) {
	a := New[int]()
	a.Append(1)
	b := a.Retain()
	if a != b {
		t.Fatalf("Retain() must return the same Array")
	}
	a.Release()
	if a.Len() != 1 {
		t.Errorf("one outstanding reference should keep the Array usable")
	}
	b.Release()
}
