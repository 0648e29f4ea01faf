package engine

import "testing"

func TestEventInvoke(t *testing.T) {
	var e Event
	calls := 0
	e.AddListener(func() { calls++ })
	e.AddListener(func() { calls++ })
	e.AddListener(nil)

	e.Invoke()

	if calls != 2 {
		t.Errorf("Expected 2 calls, got %d", calls)
	}
	if e.GetListenerCount() != 2 {
		t.Errorf("Expected 2 listeners, got %d", e.GetListenerCount())
	}

	e.RemoveAllListeners()
	e.Invoke()
	if calls != 2 {
		t.Error("Listeners should be cleared")
	}
}

func TestEventWithArg(t *testing.T) {
	var e EventWithArg[int]
	var got []int
	e.AddListener(func(v int) { got = append(got, v) })

	e.Invoke(7)
	e.Invoke(3)

	if len(got) != 2 || got[0] != 7 || got[1] != 3 {
		t.Errorf("Expected [7 3], got %v", got)
	}
}
