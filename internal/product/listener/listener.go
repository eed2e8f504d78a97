// Package listener keeps product availability in step with the inventory service.
package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	StockDepleted    = "StockDepleted"
	StockReplenished = "StockReplenished"
)

// MessageReader is satisfied by *broker.KafkaConsumer.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// AvailabilitySetter is satisfied by product.UseCase.
type AvailabilitySetter interface {
	SetAvailability(ctx context.Context, merchantID, id string, available bool) (*model.Product, error)
}

type StockListener struct {
	reader  MessageReader
	setter  AvailabilitySetter
	backoff time.Duration
	logger  logger.ZapLogger
}

func NewStockListener(reader MessageReader, setter AvailabilitySetter, log logger.ZapLogger) *StockListener {
	return &StockListener{
		reader:  reader,
		setter:  setter,
		backoff: time.Second,
		logger:  log,
	}
}

// Start blocks until ctx is cancelled.
func (l *StockListener) Start(ctx context.Context) {
	l.logger.Info("starting inventory stock listener")
	for {
		msg, err := l.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				l.logger.Info("stopping inventory stock listener")
				return
			}
			l.logger.Error("failed to read kafka message", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(l.backoff):
			}
			continue
		}
		l.process(ctx, msg.Value)
	}
}

type StockEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   StockPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type StockPayload struct {
	MerchantID string `json:"merchant_id"`
	ProductID  string `json:"product_id"`
}

func (l *StockListener) process(ctx context.Context, value []byte) {
	var ev StockEvent
	if err := json.Unmarshal(value, &ev); err != nil {
		l.logger.Error("failed to unmarshal stock event", zap.Error(err))
		return
	}

	var available bool
	switch ev.EventType {
	case StockDepleted:
		available = false
	case StockReplenished:
		available = true
	default:
		return
	}
	if ev.Payload.MerchantID == "" || ev.Payload.ProductID == "" {
		l.logger.Warn("stock event without merchant or product", zap.String("event_id", ev.EventID))
		return
	}

	if _, err := l.setter.SetAvailability(ctx, ev.Payload.MerchantID, ev.Payload.ProductID, available); err != nil {
		l.logger.Error("failed to apply stock event",
			zap.String("event_id", ev.EventID),
			zap.String("product_id", ev.Payload.ProductID),
			zap.Error(err),
		)
	}
}
