// Package notify is the outbound message boundary. Delivery is
// fire-and-forget: the core never blocks or rolls back on a failed send.
package notify

import "usdtstaking/internal/config"

type Notifier interface {
	Send(to, subject, body string) error
}

var log = config.InitLogger()

// LogNotifier writes messages to the application log. Stands in for the
// real mail gateway in development and tests.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Send(to, subject, body string) error {
	log.Infof("notify %s [%s]: %s", to, subject, body)
	return nil
}
