package events

// Publisher is the slice of the AMQP publisher the event layer needs; tests
// substitute a fake without a live broker.
type Publisher interface {
	Publish(routingKey string, payload any) error
}

// PublishBookingCreated and PublishBookingCancelled pin each payload type to
// its routing key so callers cannot mix them up.
func PublishBookingCreated(p Publisher, ev BookingCreated) error {
	return p.Publish(RKBookingCreated, ev)
}

func PublishBookingCancelled(p Publisher, ev BookingCancelled) error {
	return p.Publish(RKBookingCancelled, ev)
}
