package notifier

import (
	"encoding/json"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/booking-api/internal/events"
)

type sentMail struct {
	to, subject, body string
}

type fakeNotifier struct {
	sent []sentMail
}

func (f *fakeNotifier) Notify(to, subject, body string) error {
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func marshal(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestWorker_BookingCreated_BothRecipients(t *testing.T) {
	fn := &fakeNotifier{}
	w := NewWorker(fn)

	ev := events.BookingCreated{
		BookingID:   1,
		SlotStart:   time.Date(2026, 9, 14, 10, 30, 0, 0, time.UTC),
		Reason:      "checkup",
		UserName:    "Anna Nowak",
		UserEmail:   "anna@example.com",
		DoctorName:  "Dr. Kowalski",
		DoctorEmail: "kowalski@clinic.example.com",
	}

	err := w.handle(events.RKBookingCreated, marshal(t, ev))
	require.NoError(t, err)
	require.Len(t, fn.sent, 2)

	assert.Equal(t, "anna@example.com", fn.sent[0].to)
	assert.Equal(t, "Booking confirmation", fn.sent[0].subject)
	assert.Contains(t, fn.sent[0].body, "Anna Nowak")

	assert.Equal(t, "kowalski@clinic.example.com", fn.sent[1].to)
	assert.Equal(t, "Slot booked", fn.sent[1].subject)
	assert.Contains(t, fn.sent[1].body, "checkup")
}

func TestWorker_BookingCreated_NoEmails(t *testing.T) {
	fn := &fakeNotifier{}
	w := NewWorker(fn)

	ev := events.BookingCreated{BookingID: 1, SlotStart: time.Now()}

	err := w.handle(events.RKBookingCreated, marshal(t, ev))
	require.NoError(t, err)
	assert.Empty(t, fn.sent)
}

func TestWorker_BookingCancelled(t *testing.T) {
	fn := &fakeNotifier{}
	w := NewWorker(fn)

	ev := events.BookingCancelled{
		BookingID: 1,
		SlotStart: time.Date(2026, 9, 14, 10, 30, 0, 0, time.UTC),
		UserName:  "Anna Nowak",
		UserEmail: "anna@example.com",
	}

	err := w.handle(events.RKBookingCancelled, marshal(t, ev))
	require.NoError(t, err)
	require.Len(t, fn.sent, 1)
	assert.Equal(t, "Booking cancelled", fn.sent[0].subject)
	assert.Contains(t, fn.sent[0].body, "cancelled")
}

func TestWorker_UnknownKeyIgnored(t *testing.T) {
	fn := &fakeNotifier{}
	w := NewWorker(fn)

	err := w.handle("payment.paid", []byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, fn.sent)
}

// A delivery without an acknowledger (e.g. after the channel died) must not
// panic; the failed ack is logged and the message still gets processed.
func TestWorker_AckFailureTolerated(t *testing.T) {
	fn := &fakeNotifier{}
	w := NewWorker(fn)

	ev := events.BookingCancelled{
		BookingID: 1,
		SlotStart: time.Now(),
		UserName:  "Anna Nowak",
		UserEmail: "anna@example.com",
	}

	w.handleDelivery(amqp.Delivery{
		RoutingKey: events.RKBookingCancelled,
		Body:       marshal(t, ev),
	})
	assert.Len(t, fn.sent, 1)
}

func TestWorker_BadPayload(t *testing.T) {
	fn := &fakeNotifier{}
	w := NewWorker(fn)

	err := w.handle(events.RKBookingCreated, []byte(`{not json`))
	assert.Error(t, err)
	assert.Empty(t, fn.sent)
}
