package emailsvc

import (
	"fmt"
	"log"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/doonites/schoolhub/core"
)

type consoleService struct {
	defaultFromEmail mail.Address
	subjPrefix       string
	out              *log.Logger
}

var _ core.EmailService = (*consoleService)(nil)

// NewConsoleService prints emails instead of sending them.
func NewConsoleService(conf *core.Config, out *log.Logger) core.EmailService {
	return &consoleService{
		defaultFromEmail: conf.DefaultFromEmail(),
		subjPrefix:       "[" + conf.AppName + "] ",
		out:              out,
	}
}

func (svc consoleService) SendMessages(messages ...*core.EmailMessage) {
	for _, msg := range messages {
		if msg.HasRecipients() && msg.HasContent() {
			go svc.out.Println(svc.render(*msg))
		}
	}
}

func (svc consoleService) render(msg core.EmailMessage) string {
	body := new(strings.Builder)
	_, _ = fmt.Fprintf(body, "From: %s\r\n", svc.defaultFromEmail.String())
	_, _ = fmt.Fprintf(body, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	_, _ = fmt.Fprintf(body, "Subject: %s\r\n", svc.subjPrefix+msg.Subject)
	_, _ = fmt.Fprintf(body, "To: %s\r\n", joinAddresses(msg.To))
	if len(msg.Cc) > 0 {
		_, _ = fmt.Fprintf(body, "CC: %s\r\n", joinAddresses(msg.Cc))
	}
	_, _ = fmt.Fprint(body, "Content-Type: text/plain\r\n\r\n")
	_, _ = fmt.Fprintf(body, "%s\r\n", msg.Body)
	return body.String()
}

func joinAddresses(addrs []mail.Address) string {
	toJoin := make([]string, 0, len(addrs))
	for _, a := range addrs {
		toJoin = append(toJoin, a.String())
	}
	return strings.Join(toJoin, ", ")
}

// Outbox records messages synchronously instead of sending them. For tests.
type Outbox struct {
	mu   sync.Mutex
	sent []core.EmailMessage
}

var _ core.EmailService = (*Outbox)(nil)

func (o *Outbox) SendMessages(messages ...*core.EmailMessage) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, msg := range messages {
		if msg.HasRecipients() && msg.HasContent() {
			o.sent = append(o.sent, *msg)
		}
	}
}

func (o *Outbox) Sent() []core.EmailMessage {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]core.EmailMessage(nil), o.sent...)
}
