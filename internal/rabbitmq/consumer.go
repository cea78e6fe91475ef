package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/lib/sl"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/models"
)

// maxInFlight ограничивает число одновременно обрабатываемых уведомлений.
const maxInFlight = 10

// NoticeHandler обрабатывает одно уведомление об истекающей подписке.
type NoticeHandler func(notice models.ExpiryNotice) error

// ConsumeExpiryNotices подписывается на очередь уведомлений и разбирает
// каждое сообщение в ExpiryNotice. Нечитаемое тело подтверждается и
// отбрасывается: повторная доставка его не исправит. Ошибка обработчика
// возвращает сообщение в очередь.
func ConsumeExpiryNotices(ctx context.Context, ch *amqp.Channel, queueName string, log *slog.Logger, handler NoticeHandler) error {
	const op = "rabbitmq.ConsumeExpiryNotices"

	delivery, err := ch.Consume(
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	sem := make(chan struct{}, maxInFlight)
	go func() {
		for {
			select {
			case d, ok := <-delivery:
				if !ok {
					return
				}
				sem <- struct{}{}
				go func(d amqp.Delivery) {
					defer func() { <-sem }()
					handleDelivery(d, log, handler)
				}(d)
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

func handleDelivery(d amqp.Delivery, log *slog.Logger, handler NoticeHandler) {
	var notice models.ExpiryNotice
	if err := json.Unmarshal(d.Body, &notice); err != nil {
		log.Error("dropping malformed expiry notice", sl.Err(err))
		if ackErr := d.Ack(false); ackErr != nil {
			log.Error("failed to ack malformed message", sl.Err(ackErr))
		}
		return
	}

	if err := handler(notice); err != nil {
		log.Error("expiry notice handler failed, requeueing",
			slog.String("phone_number", notice.PhoneNumber), sl.Err(err))
		if nackErr := d.Nack(false, true); nackErr != nil {
			log.Error("failed to nack message", sl.Err(nackErr))
		}
		return
	}

	if ackErr := d.Ack(false); ackErr != nil {
		log.Error("failed to ack message", sl.Err(ackErr))
	}
}
