package service

import (
	"context"
	"fmt"
	"time"

	"rentmart-backend/internal/domain"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/shopspring/decimal"
)

type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewSendGridEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &sendGridEmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridEmailService) send(to, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *sendGridEmailService) SendOrderPlacedNotification(_ context.Context, vendorEmail, customerName string, orderID int32, total decimal.Decimal) error {
	subject := fmt.Sprintf("New order #%d", orderID)
	body := fmt.Sprintf("%s placed order #%d for a total of %s. Review it in your vendor dashboard.", customerName, orderID, total.StringFixed(2))
	return s.send(vendorEmail, subject, body)
}

func (s *sendGridEmailService) SendOrderStatusNotification(_ context.Context, customerEmail string, orderID int32, status domain.OrderStatus) error {
	subject := fmt.Sprintf("Order #%d is now %s", orderID, status)
	body := fmt.Sprintf("Your order #%d has moved to status %s.", orderID, status)
	return s.send(customerEmail, subject, body)
}

func (s *sendGridEmailService) SendReturnReminder(_ context.Context, customerEmail string, orderID int32, endDate time.Time) error {
	subject := fmt.Sprintf("Return reminder for order #%d", orderID)
	body := fmt.Sprintf("The rental period for order #%d ended on %s. Please arrange the return to avoid late fees.", orderID, endDate.Format("2006-01-02"))
	return s.send(customerEmail, subject, body)
}

func (s *sendGridEmailService) SendReturnSettlementNotification(_ context.Context, customerEmail string, orderID int32, finalPayment decimal.Decimal) error {
	subject := fmt.Sprintf("Return settlement for order #%d", orderID)
	var body string
	if finalPayment.IsNegative() {
		body = fmt.Sprintf("Order #%d has been settled. An outstanding balance of %s is due.", orderID, finalPayment.Neg().StringFixed(2))
	} else {
		body = fmt.Sprintf("Order #%d has been settled. A refund of %s will be issued.", orderID, finalPayment.StringFixed(2))
	}
	return s.send(customerEmail, subject, body)
}
