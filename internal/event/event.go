// internal/event/event.go
package event

// EventType - имя события сессии (см. types.go).
type EventType string

// Event - уведомление об изменении сессии. Data обычно game.Notification
// или app.TextureStatus.
type Event struct {
	Type EventType
	Data any
}

// Listener получает события в игровом потоке.
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc позволяет подписать обычную функцию.
type ListenerFunc func(event Event)

func (f ListenerFunc) OnEvent(event Event) {
	f(event)
}

// Dispatcher рассылает события сессии подписчикам: диагностике, тестам.
// Не потокобезопасен: вызывается только из игрового цикла.
type Dispatcher struct {
	listeners map[EventType][]Listener
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[EventType][]Listener)}
}

// Subscribe добавляет подписчика на один тип события.
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) {
	d.listeners[eventType] = append(d.listeners[eventType], listener)
}

// SubscribeAll подписывает listener на несколько типов, обычно на All.
func (d *Dispatcher) SubscribeAll(listener Listener, types ...EventType) {
	for _, t := range types {
		d.Subscribe(t, listener)
	}
}

// Unsubscribe убирает подписчика с одного типа события.
func (d *Dispatcher) Unsubscribe(eventType EventType, listener Listener) {
	list := d.listeners[eventType]
	for i, l := range list {
		if l == listener {
			d.listeners[eventType] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Detach убирает подписчика со всех типов событий.
func (d *Dispatcher) Detach(listener Listener) {
	for t := range d.listeners {
		d.Unsubscribe(t, listener)
	}
}

// Dispatch отправляет событие. Nil-диспетчер молча ничего не делает.
// Подписчик может отписаться прямо из OnEvent: рассылка идет по снимку списка.
func (d *Dispatcher) Dispatch(event Event) {
	if d == nil {
		return
	}
	for _, listener := range d.listeners[event.Type] {
		listener.OnEvent(event)
	}
}
