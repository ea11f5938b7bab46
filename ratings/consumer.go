package ratings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/segmentio/kafka-go"
)

// BorrowEvent 是借阅事件流里的一条消息。
//
//	{"type":"borrow","user_id":"u1","book_id":"b1"}
//	{"type":"return","user_id":"u1","book_id":"b1"}
//	{"type":"rate","user_id":"u1","book_id":"b1","rating":4}
type BorrowEvent struct {
	Type   string  `json:"type"`
	UserID string  `json:"user_id"`
	BookID string  `json:"book_id"`
	Rating float64 `json:"rating,omitempty"`
}

const (
	EventBorrow = "borrow"
	EventReturn = "return"
	EventRate   = "rate"
)

// Consumer 订阅借阅事件 topic 并把事件回放到内存仓库，
// 让推荐引擎的快照跟上线上借阅行为。
type Consumer struct {
	reader *kafka.Reader
	repo   *Repository
	logger *slog.Logger
}

// ConsumerConfig 描述 Kafka 接入参数。
type ConsumerConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

// NewConsumer 构建事件消费者，repo 为事件的落点。
func NewConsumer(cfg ConsumerConfig, repo *Repository) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.Topic,
		GroupID: cfg.GroupID,
	})
	return &Consumer{
		reader: reader,
		repo:   repo,
		logger: slog.Default().With("component", "borrow-consumer"),
	}
}

// Start 阻塞消费直到 ctx 取消。单条消息解析失败只记日志不中断。
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info("borrow consumer started", "topic", c.reader.Config().Topic)
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				c.logger.Info("borrow consumer stopped")
				return nil
			}
			return fmt.Errorf("reading borrow event: %w", err)
		}

		var ev BorrowEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			c.logger.Warn("skipping malformed borrow event",
				"offset", msg.Offset,
				"error", err,
			)
			continue
		}
		if err := c.Apply(ev); err != nil {
			c.logger.Warn("skipping borrow event",
				"offset", msg.Offset,
				"type", ev.Type,
				"error", err,
			)
		}
	}
}

// Apply 把单个事件写入仓库。未知事件类型返回错误。
func (c *Consumer) Apply(ev BorrowEvent) error {
	if ev.UserID == "" || ev.BookID == "" {
		return fmt.Errorf("event missing user_id or book_id")
	}
	switch ev.Type {
	case EventBorrow:
		c.repo.BorrowBook(ev.UserID, ev.BookID)
	case EventReturn:
		c.repo.ReturnBook(ev.UserID, ev.BookID)
	case EventRate:
		c.repo.AddRating(ev.UserID, ev.BookID, ev.Rating)
	default:
		return fmt.Errorf("unknown event type %q", ev.Type)
	}
	return nil
}

// Close 释放 Kafka reader。
func (c *Consumer) Close() error {
	return c.reader.Close()
}
