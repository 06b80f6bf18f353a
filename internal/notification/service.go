// Package notification delivers user-facing events over Telegram on a
// best-effort basis. The ledger never waits for, or learns about, delivery
// outcomes: messages are queued in-process and sent by a background worker.
package notification

import (
	"sync"

	"loyalty-backend/pkg/logger"
	"loyalty-backend/pkg/metrics"
)

// Sender is the outbound Telegram boundary, implemented by the bot.
type Sender interface {
	SendMessage(telegramID int64, text string) error
}

type message struct {
	telegramID int64
	text       string
}

// Dispatcher is a fire-and-forget notification queue. Enqueue never blocks
// and never reports failure to the caller; a full queue drops the message.
type Dispatcher struct {
	sender Sender
	queue  chan message

	closeOnce sync.Once
	done      chan struct{}
}

const queueCapacity = 256

// NewDispatcher starts the delivery worker. Pass a nil sender to run with
// deliveries disabled (in-app notification rows are still written by the
// callers' transactions).
func NewDispatcher(sender Sender) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan message, queueCapacity),
		done:   make(chan struct{}),
	}
	go d.run()
	return d
}

// Enqueue schedules a Telegram message for the user. Safe to call from
// inside request handlers after their transaction commits.
func (d *Dispatcher) Enqueue(telegramID int64, text string) {
	select {
	case d.queue <- message{telegramID: telegramID, text: text}:
	default:
		logger.Get().Warn().
			Int64("telegram_id", telegramID).
			Msg("notification queue full, message dropped")
		metrics.NotificationsSentTotal.WithLabelValues("error").Inc()
	}
}

// Close stops the worker after draining the queue.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
		<-d.done
	})
}

func (d *Dispatcher) run() {
	defer close(d.done)

	for msg := range d.queue {
		if d.sender == nil {
			continue
		}
		if err := d.sender.SendMessage(msg.telegramID, msg.text); err != nil {
			logger.Get().Warn().
				Err(err).
				Int64("telegram_id", msg.telegramID).
				Msg("failed to deliver telegram notification")
			metrics.NotificationsSentTotal.WithLabelValues("error").Inc()
			continue
		}
		metrics.NotificationsSentTotal.WithLabelValues("ok").Inc()
	}
}
