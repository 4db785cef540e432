package event

import "testing"

type recorder struct {
	got []Event
}

func (r *recorder) OnEvent(e Event) {
	r.got = append(r.got, e)
}

func TestDispatchReachesSubscribers(t *testing.T) {
	d := NewDispatcher()
	r := &recorder{}
	d.SubscribeAll(r, RoundStarted, GameOver)

	d.Dispatch(Event{Type: RoundStarted, Data: 1})
	d.Dispatch(Event{Type: GuessScored})
	d.Dispatch(Event{Type: GameOver})

	if len(r.got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(r.got))
	}
	if r.got[0].Type != RoundStarted || r.got[0].Data != 1 {
		t.Fatalf("unexpected first event %+v", r.got[0])
	}
}

func TestUnsubscribe(t *testing.T) {
	d := NewDispatcher()
	r := &recorder{}
	d.Subscribe(GuessScored, r)
	d.Unsubscribe(GuessScored, r)
	d.Dispatch(Event{Type: GuessScored})
	if len(r.got) != 0 {
		t.Fatal("listener still called after Unsubscribe")
	}
}

func TestListenerFuncAndNilDispatcher(t *testing.T) {
	calls := 0
	d := NewDispatcher()
	d.Subscribe(TextureResolved, ListenerFunc(func(Event) { calls++ }))
	d.Dispatch(Event{Type: TextureResolved})
	if calls != 1 {
		t.Fatalf("calls = %d", calls)
	}
	var nilD *Dispatcher
	nilD.Dispatch(Event{Type: TextureResolved})
}

type selfRemover struct {
	d     *Dispatcher
	calls int
}

func (s *selfRemover) OnEvent(Event) {
	s.calls++
	s.d.Detach(s)
}

func TestDetachDuringDispatch(t *testing.T) {
	d := NewDispatcher()
	first := &selfRemover{d: d}
	second := &recorder{}
	d.SubscribeAll(first, All...)
	d.Subscribe(GuessScored, second)

	d.Dispatch(Event{Type: GuessScored})
	d.Dispatch(Event{Type: GuessScored})
	d.Dispatch(Event{Type: GameOver})

	if first.calls != 1 {
		t.Fatalf("detached listener called %d times", first.calls)
	}
	if len(second.got) != 2 {
		t.Fatalf("remaining listener got %d events, want 2", len(second.got))
	}
}
