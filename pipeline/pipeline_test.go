package pipeline

import (
	"context"
	"errors"
	"testing"
)

func intSliceEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFromSlice_Collect(t *testing.T) {
	got, err := Collect(context.Background(), FromSlice([]int{1, 2, 3}))
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{1, 2, 3}; !intSliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFromSlice_Empty(t *testing.T) {
	got, err := Collect(context.Background(), FromSlice([]int{}))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty, got %v", got)
	}
}

func TestFrom_Iterator(t *testing.T) {
	iter := &sliceIter[string]{items: []string{"a", "b"}}
	got, err := Collect(context.Background(), From[string](iter))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("got %v, want [a b]", got)
	}
}

func TestMap_TypeConversion(t *testing.T) {
	p := Map(FromSlice([]string{"a", "bb", "ccc"}), func(_ context.Context, s string) (int, error) {
		return len(s), nil
	})
	got, err := Collect(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{1, 2, 3}; !intSliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMap_Error(t *testing.T) {
	boom := errors.New("boom")
	p := Map(FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) (int, error) {
		if n == 2 {
			return 0, boom
		}
		return n, nil
	})
	got, err := Collect(context.Background(), p)
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if !intSliceEqual(got, []int{1}) {
		t.Errorf("expected partial [1], got %v", got)
	}
}

func TestFilter_PreservesOrder(t *testing.T) {
	p := Filter(FromSlice([]int{5, 2, 8, 1, 4}), func(n int) bool { return n%2 == 0 })
	got, _ := Collect(context.Background(), p)
	if want := []int{2, 8, 4}; !intSliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFilter_None(t *testing.T) {
	p := Filter(FromSlice([]int{1, 3}), func(n int) bool { return n%2 == 0 })
	got, _ := Collect(context.Background(), p)
	if len(got) != 0 {
		t.Errorf("expected empty, got %v", got)
	}
}

func TestConcat(t *testing.T) {
	p := Concat(FromSlice([]int{1, 2}), FromSlice([]int{}), FromSlice([]int{3}))
	got, _ := Collect(context.Background(), p)
	if want := []int{1, 2, 3}; !intSliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDrain(t *testing.T) {
	var sum int
	err := Drain(FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) error {
		sum += n
		return nil
	}).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if sum != 6 {
		t.Errorf("expected 6, got %d", sum)
	}
}

func TestForEach_SinkError(t *testing.T) {
	sinkErr := errors.New("sink")
	calls := 0
	err := ForEach(context.Background(), FromSlice([]int{1, 2, 3}), func(_ context.Context, _ int) error {
		calls++
		return sinkErr
	})
	if !errors.Is(err, sinkErr) {
		t.Fatalf("expected sink error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected drain to stop after first error, got %d calls", calls)
	}
}

func TestCollect_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Collect(ctx, FromSlice([]int{1})); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
