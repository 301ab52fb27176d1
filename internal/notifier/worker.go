package notifier

import (
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/clinicdesk/booking-api/internal/events"
)

// Worker consumes booking events and turns them into email notifications.
// Delivery failures are logged and swallowed: a missed email must never
// invalidate a committed booking decision.
type Worker struct {
	notifier Notifier
}

func NewWorker(n Notifier) *Worker {
	return &Worker{notifier: n}
}

func (w *Worker) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			w.handleDelivery(msg)
		}
		log.Println("[notifier] channel closed, stopping worker")
	}()
}

func (w *Worker) handleDelivery(msg amqp.Delivery) {
	if err := w.handle(msg.RoutingKey, msg.Body); err != nil {
		log.Printf("[notifier] %s: %v", msg.RoutingKey, err)
	}
	if err := msg.Ack(false); err != nil {
		log.Printf("[notifier] ack %s: %v", msg.RoutingKey, err)
	}
}

func (w *Worker) handle(key string, body []byte) error {
	switch key {
	case events.RKBookingCreated:
		ev, err := events.Unmarshal[events.BookingCreated](body)
		if err != nil {
			return err
		}
		w.notifyBookingCreated(ev)

	case events.RKBookingCancelled:
		ev, err := events.Unmarshal[events.BookingCancelled](body)
		if err != nil {
			return err
		}
		w.notifyBookingCancelled(ev)

	default:
		log.Printf("[notifier] skip unknown key=%s", key)
	}
	return nil
}

func (w *Worker) notifyBookingCreated(ev events.BookingCreated) {
	start := ev.SlotStart.Format("Mon, 02 Jan 2006 15:04")

	if ev.UserEmail != "" {
		body := fmt.Sprintf("Hello %s,\n\nYour booking for %s has been confirmed.\n\nThanks.",
			ev.UserName, start)
		w.send(ev.UserEmail, "Booking confirmation", body)
	}

	if ev.DoctorEmail != "" {
		body := fmt.Sprintf("Hello %s,\n\nYour slot on %s has been booked.", ev.DoctorName, start)
		if ev.Reason != "" {
			body += fmt.Sprintf("\nReason given: %s", ev.Reason)
		}
		w.send(ev.DoctorEmail, "Slot booked", body)
	}
}

func (w *Worker) notifyBookingCancelled(ev events.BookingCancelled) {
	if ev.UserEmail == "" {
		return
	}
	body := fmt.Sprintf("Hello %s,\n\nYour booking for %s has been cancelled.",
		ev.UserName, ev.SlotStart.Format("Mon, 02 Jan 2006 15:04"))
	w.send(ev.UserEmail, "Booking cancelled", body)
}

func (w *Worker) send(to, subject, body string) {
	if err := w.notifier.Notify(to, subject, body); err != nil {
		log.Printf("[notifier] delivery failed: %v", err)
	}
}
