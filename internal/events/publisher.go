package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RoundSettled is emitted after a settlement commits. Downstream
// consumers (analytics, bonus engine) key on the account.
type RoundSettled struct {
	RoundID   string          `json:"round_id"`
	AccountID string          `json:"account_id"`
	GameType  string          `json:"game_type"`
	BetAmount decimal.Decimal `json:"bet_amount"`
	WinAmount decimal.Decimal `json:"win_amount"`
	Result    string          `json:"result"`
	TsUnixMs  int64           `json:"ts_unix_ms"`
}

// Publisher writes settlement events to Kafka. A nil Publisher is valid
// and drops everything, so the broker stays optional in development.
type Publisher struct {
	writer *kafka.Writer
	log    *zap.Logger
}

func NewPublisher(brokers, topic string, log *zap.Logger) *Publisher {
	if brokers == "" {
		return nil
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
		log: log,
	}
}

// PublishRoundSettled sends the event. Publishing is best-effort: the
// round is already committed, so a broker failure is logged, not
// returned.
func (p *Publisher) PublishRoundSettled(ctx context.Context, e RoundSettled) {
	if p == nil {
		return
	}
	e.TsUnixMs = time.Now().UnixMilli()

	payload, err := json.Marshal(e)
	if err != nil {
		p.log.Error("marshal round settled event", zap.Error(err))
		return
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.AccountID),
		Value: payload,
		Time:  time.Now(),
	}); err != nil {
		p.log.Error("publish round settled event",
			zap.String("round_id", e.RoundID), zap.Error(err))
	}
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
