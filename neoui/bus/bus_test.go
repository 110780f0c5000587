package bus

import (
	"errors"
	"testing"
)

func TestChannelExhaustion(t *testing.T) {
	b := New[int]()
	for i := 0; i < NumChannels; i++ {
		tx, rx, err := b.Channel()
		if err != nil {
			t.Fatalf("Channel() #%d: %v", i, err)
		}
		if tx.Channel() != i || rx.Channel() != i {
			t.Fatalf("Channel() #%d returned index %d/%d", i, tx.Channel(), rx.Channel())
		}
	}
	if _, _, err := b.Channel(); !errors.Is(err, ErrTooManyChannels) {
		t.Fatalf("Channel() past pool err = %v, want ErrTooManyChannels", err)
	}
	if b.Allocated() != NumChannels {
		t.Fatalf("Allocated() = %d, want %d", b.Allocated(), NumChannels)
	}
}

func TestMustChannelPanics(t *testing.T) {
	b := New[int]()
	for i := 0; i < NumChannels; i++ {
		b.MustChannel()
	}
	defer func() {
		if recover() == nil {
			t.Fatal("MustChannel() past pool did not panic")
		}
	}()
	b.MustChannel()
}

func TestSendRecvFIFO(t *testing.T) {
	b := New[int]()
	tx, rx := b.MustChannel()

	for i := 1; i <= QueueSlots; i++ {
		if !tx.Send(i) {
			t.Fatalf("Send(%d) = false", i)
		}
	}
	if tx.Send(99) {
		t.Fatal("Send() on full channel = true, want false")
	}
	if got := b.Dropped(tx.Channel()); got != 1 {
		t.Fatalf("Dropped() = %d, want 1", got)
	}

	for i := 1; i <= QueueSlots; i++ {
		v, ok := rx.Recv()
		if !ok || v != i {
			t.Fatalf("Recv() = %d,%v, want %d,true", v, ok, i)
		}
	}
	if v, ok := rx.Recv(); ok || v != 0 {
		t.Fatalf("Recv() on empty = %d,%v, want 0,false", v, ok)
	}
}

func TestChannelsAreIndependent(t *testing.T) {
	b := New[string]()
	txA, rxA := b.MustChannel()
	txB, rxB := b.MustChannel()

	txA.Send("a1")
	txB.Send("b1")
	txA.Send("a2")

	if b.Pending(0) != 2 || b.Pending(1) != 1 {
		t.Fatalf("Pending() = %d/%d, want 2/1", b.Pending(0), b.Pending(1))
	}
	if v, _ := rxB.Recv(); v != "b1" {
		t.Fatalf("rxB.Recv() = %q", v)
	}
	if v, _ := rxA.Recv(); v != "a1" {
		t.Fatalf("rxA.Recv() = %q", v)
	}
	if rxA.Len() != 1 || rxB.Len() != 0 {
		t.Fatalf("Len() = %d/%d, want 1/0", rxA.Len(), rxB.Len())
	}
}

func TestSharedSenderCopies(t *testing.T) {
	b := New[int]()
	tx, rx := b.MustChannel()
	tx2 := tx

	tx.Send(1)
	tx2.Send(2)

	for want := 1; want <= 2; want++ {
		if v, _ := rx.Recv(); v != want {
			t.Fatalf("Recv() = %d, want %d", v, want)
		}
	}
}

func TestZeroHandles(t *testing.T) {
	var tx Sender[int]
	var rx Receiver[int]
	if tx.Valid() || rx.Valid() {
		t.Fatal("zero handles report valid")
	}
	if tx.Send(1) {
		t.Fatal("zero Sender accepted a value")
	}
	if _, ok := rx.Recv(); ok {
		t.Fatal("zero Receiver returned a value")
	}
}
