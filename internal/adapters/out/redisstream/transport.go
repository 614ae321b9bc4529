// Package redisstream implements ports.Transport over Redis streams, one stream per
// agent mailbox. It lets agents run in separate processes.
package redisstream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"parcelflow/internal/core/application/messages"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// Defaults applied by NewTransport.
const (
	DefaultPrefix = "parcelflow:inbox:"
	DefaultBlock  = time.Second
	DefaultCount  = 16
)

// Stream entry fields.
const (
	fieldID           = "id"
	fieldFrom         = "from"
	fieldTo           = "to"
	fieldPerformative = "performative"
	fieldBody         = "body"
)

// Config tunes the transport. Zero values select the defaults.
type Config struct {
	// Prefix is prepended to the address to form the stream key.
	Prefix string
	// Block bounds a single XREAD wait; shutdown is noticed at least this often.
	Block time.Duration
	// Count is the maximum number of entries fetched per XREAD.
	Count int64
}

// Transport is a ports.Transport backed by Redis streams.
//
// Send appends with XADD. Each Inbox runs one reader goroutine that XREADs its stream
// from the beginning and deletes every entry once it has been handed over, so the
// stream behaves as a queue: entries written before the reader starts are delivered,
// entries already delivered are not replayed after a restart. Stream order gives FIFO
// per recipient.
type Transport struct {
	rdb    *redis.Client
	cfg    Config
	logger *slog.Logger
}

// NewTransport wraps an existing client.
func NewTransport(rdb *redis.Client, cfg Config, logger *slog.Logger) (*Transport, error) {
	if rdb == nil {
		return nil, errs.NewValueIsRequiredError("redis client")
	}
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultPrefix
	}
	if cfg.Block <= 0 {
		cfg.Block = DefaultBlock
	}
	if cfg.Count <= 0 {
		cfg.Count = DefaultCount
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Transport{
		rdb:    rdb,
		cfg:    cfg,
		logger: logger.With("component", "redis_transport"),
	}, nil
}

// Key returns the stream key for addr.
func (t *Transport) Key(addr messages.Address) string {
	return t.cfg.Prefix + addr.String()
}

// Send appends env to the recipient's stream.
func (t *Transport) Send(ctx context.Context, env messages.Envelope) error {
	if err := env.Validate(); err != nil {
		return err
	}

	err := t.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: t.Key(env.To),
		Values: map[string]any{
			fieldID:           env.ID.String(),
			fieldFrom:         env.From.String(),
			fieldTo:           env.To.String(),
			fieldPerformative: string(env.Performative),
			fieldBody:         string(env.Body),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd %s: %w", t.Key(env.To), err)
	}
	return nil
}

// Inbox starts a reader for addr. The returned channel is closed when ctx is done.
func (t *Transport) Inbox(ctx context.Context, addr messages.Address) (<-chan messages.Envelope, error) {
	if err := addr.Validate(); err != nil {
		return nil, err
	}

	out := make(chan messages.Envelope)
	go t.read(ctx, t.Key(addr), out)
	return out, nil
}

func (t *Transport) read(ctx context.Context, key string, out chan<- messages.Envelope) {
	defer close(out)

	lastID := "0"
	for ctx.Err() == nil {
		streams, err := t.rdb.XRead(ctx, &redis.XReadArgs{
			Streams: []string{key, lastID},
			Count:   t.cfg.Count,
			Block:   t.cfg.Block,
		}).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || ctx.Err() != nil {
				continue
			}
			t.logger.WarnContext(ctx, "Error reading stream", "stream", key, "error", err)
			select {
			case <-ctx.Done():
			case <-time.After(t.cfg.Block):
			}
			continue
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				lastID = msg.ID

				env, err := decodeEntry(msg.Values)
				if err != nil {
					t.logger.WarnContext(ctx, "Stream entry discarded", "stream", key, "entry_id", msg.ID, "error", err)
				} else {
					select {
					case out <- env:
					case <-ctx.Done():
						return
					}
				}

				if err := t.rdb.XDel(ctx, key, msg.ID).Err(); err != nil {
					t.logger.WarnContext(ctx, "Failed to delete stream entry", "stream", key, "entry_id", msg.ID, "error", err)
				}
			}
		}
	}
}

func decodeEntry(values map[string]any) (messages.Envelope, error) {
	field := func(name string) string {
		s, _ := values[name].(string)
		return s
	}

	id, err := kernel.UUIDFromString(field(fieldID))
	if err != nil {
		return messages.Envelope{}, err
	}

	env := messages.Envelope{
		ID:           id,
		From:         messages.Address(field(fieldFrom)),
		To:           messages.Address(field(fieldTo)),
		Performative: messages.Performative(field(fieldPerformative)),
		Body:         []byte(field(fieldBody)),
	}
	if err := env.Validate(); err != nil {
		return messages.Envelope{}, err
	}
	return env, nil
}
