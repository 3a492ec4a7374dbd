package services

import "github.com/oxbowlabs/taper/internal/models"

// MetricEvent is the explicit notification emitted whenever a metric value
// lands: raw logging operations emit entry-level signals, the aggregator
// emits recomputed per-day totals, and the streak tracker emits milestone
// counts. Subscribers (achievements, challenges) react to it instead of
// reaching into each other's state.
type MetricEvent struct {
	Type   models.MetricType
	Value  float64
	UserID uint
	Day    string
}

// MetricSubscriber receives every published metric event for a user.
type MetricSubscriber interface {
	MetricLogged(event MetricEvent)
}

// Dispatcher fans one event out to every registered subscriber,
// synchronously and in registration order.
type Dispatcher struct {
	subscribers []MetricSubscriber
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

func (dispatcher *Dispatcher) Subscribe(subscriber MetricSubscriber) {
	dispatcher.subscribers = append(dispatcher.subscribers, subscriber)
}

func (dispatcher *Dispatcher) Publish(event MetricEvent) {
	for _, subscriber := range dispatcher.subscribers {
		subscriber.MetricLogged(event)
	}
}
