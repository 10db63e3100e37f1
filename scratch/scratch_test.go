package scratch

import "testing"

func TestTakeBytesAdvancesOffset(t *testing.T) {
	s := New(make([]byte, 64))
	a := s.TakeBytes(16)
	b := s.TakeBytes(16)
	if len(a) != 16 || len(b) != 16 {
		t.Fatalf("unexpected lengths: %d %d", len(a), len(b))
	}
	if s.Avail() != 32 {
		t.Fatalf("expected 32 bytes available, got %d", s.Avail())
	}
}

func TestDropRewinds(t *testing.T) {
	s := New(make([]byte, 64))
	mark := s.Mark()
	s.TakeBytes(48)
	s.Drop(mark)
	if s.Avail() != 64 {
		t.Fatalf("expected full arena after drop, got %d avail", s.Avail())
	}
}

func TestTakeBytesOutOfSpacePanics(t *testing.T) {
	s := New(make([]byte, 8))
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on out-of-space take")
		}
	}()
	s.TakeBytes(9)
}

func TestTakeInt64RoundTrips(t *testing.T) {
	s := New(make([]byte, 1024))
	xs := Take[int64](s, 10)
	for i := range xs {
		xs[i] = int64(i * i)
	}
	for i := range xs {
		if xs[i] != int64(i*i) {
			t.Fatalf("element %d corrupted: got %d", i, xs[i])
		}
	}
}
