package mainloop

import "testing"

func TestCoalescerMergesBurstIntoSingleRun(t *testing.T) {
	queue := make([]func(), 0, 8)
	c := NewCoalescer(func(fn func()) { queue = append(queue, fn) })

	width := 0
	for i := 1; i <= 5; i++ {
		w := i * 100
		c.Post("layout:main", func() { width = w })
	}

	if len(queue) != 1 {
		t.Fatalf("expected 1 scheduled callback, got %d", len(queue))
	}
	if !c.IsPending("layout:main") {
		t.Fatalf("expected key to be pending before the run")
	}
	queue[0]()

	if width != 500 {
		t.Fatalf("expected latest callback to run, got %d", width)
	}
	if c.IsPending("layout:main") {
		t.Fatalf("expected key to be cleared after the run")
	}
}

func TestCoalescerKeysAreIndependent(t *testing.T) {
	queue := make([]func(), 0, 4)
	c := NewCoalescer(func(fn func()) { queue = append(queue, fn) })

	c.Post("layout:w1", func() {})
	c.Post("layout:w2", func() {})
	c.Post("layout:w1", func() {})

	if len(queue) != 2 {
		t.Fatalf("expected one run per key, got %d", len(queue))
	}
}

func TestCoalescerCancelTurnsRunIntoNoop(t *testing.T) {
	queue := make([]func(), 0, 4)
	c := NewCoalescer(func(fn func()) { queue = append(queue, fn) })

	ran := false
	c.Post("layout:gone", func() { ran = true })
	c.Cancel("layout:gone")
	queue[0]()

	if ran {
		t.Fatalf("expected cancelled work not to run")
	}
}

func TestCoalescerDropsWorkAfterDestroy(t *testing.T) {
	queue := make([]func(), 0, 4)
	c := NewCoalescer(func(fn func()) { queue = append(queue, fn) })

	ran := false
	c.Post("layout:main", func() { ran = true })
	c.Destroy()
	queue[0]()

	if ran {
		t.Fatalf("expected queued work to be dropped after destroy")
	}

	c.Post("layout:main", func() { ran = true })
	if len(queue) != 1 {
		t.Fatalf("expected no new callback after destroy, got %d", len(queue))
	}
}

func TestNewCoalescerPanicsOnNilPost(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected NewCoalescer to panic when post is nil")
		}
	}()

	_ = NewCoalescer(nil)
}
