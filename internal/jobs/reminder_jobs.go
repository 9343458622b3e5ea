package jobs

import (
	"context"
	"time"

	"rentmart-backend/internal/logger"
)

// SendReturnReminders emails customers whose confirmed rental windows have
// lapsed without a settlement. Delivery failures are logged and skipped.
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func() {
		ctx := context.Background()

		// Confirmed rental orders whose latest line window has ended and whose
		// invoices are not all completed yet.
		query := `
			SELECT o.id, u.email, MAX(d.end_date)
			FROM sales_orders o
			JOIN sales_order_details d ON d.order_id = o.id
			JOIN users u ON u.id = o.customer_id
			WHERE o.is_service = true
			  AND o.status = 'CONFIRMED'
			  AND o.deleted_on IS NULL
			  AND NOT EXISTS (
			      SELECT 1 FROM sales_invoices i
			      WHERE i.order_id = o.id
			        AND i.delivery_status = 'COMPLETED'
			        AND i.deleted_on IS NULL
			  )
			GROUP BY o.id, u.email
			HAVING MAX(d.end_date) < $1
		`

		rows, err := jr.db.QueryContext(ctx, query, time.Now())
		if err != nil {
			logger.Error("Failed to query lapsed rentals", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var orderID int32
			var email string
			var endDate time.Time
			if err := rows.Scan(&orderID, &email, &endDate); err != nil {
				logger.Error("Failed to scan lapsed rental", "error", err)
				continue
			}

			if err := jr.services.Email.SendReturnReminder(ctx, email, orderID, endDate); err != nil {
				logger.Warn("Failed to send return reminder", "order_id", orderID, "error", err)
				continue
			}
			count++
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating lapsed rentals", "error", err)
			return
		}

		logger.Info("Sent return reminders", "count", count)
	})
}
