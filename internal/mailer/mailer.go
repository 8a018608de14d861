// Package mailer sends transactional customer mail over SMTP.
package mailer

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/config"
	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/domain"
)

type Mailer struct {
	cfg config.SmtpConfig
}

func NewMailer(cfg config.SmtpConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) send(to, subject, body string) {
	if !m.cfg.Enable || to == "" {
		return
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := d.DialAndSend(msg); err != nil {
		zap.L().Warn("send mail failed", zap.String("to", to), zap.Error(err))
	}
}

// OrderStatusChanged mails the customer about shipped/delivered milestones.
// Runs in its own goroutine so fulfillment updates never wait on SMTP.
func (m *Mailer) OrderStatusChanged(o *domain.Order) {
	go func() {
		switch o.FulfillmentStatus {
		case domain.OrderShipped:
			m.send(o.CustomerEmail,
				fmt.Sprintf("Your order %s has shipped", o.OrderNo),
				fmt.Sprintf("Good news %s, your order %s is on its way.\nTracking number: %s\n",
					o.CustomerName, o.OrderNo, o.TrackingNumber))
		case domain.OrderDelivered:
			m.send(o.CustomerEmail,
				fmt.Sprintf("Your order %s was delivered", o.OrderNo),
				fmt.Sprintf("Hi %s, your order %s has been delivered. Enjoy!\n",
					o.CustomerName, o.OrderNo))
		}
	}()
}
