// Package events consumes sale events published by the sales subsystem.
package events

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/xeipuuv/gojsonschema"

	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/models"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/workflow"
)

//go:embed sale.schema.json
var saleSchema []byte

// ErrInvalidPayload marks sale events rejected before reaching the engine.
var ErrInvalidPayload = errors.New("invalid sale payload")

// SaleRecorder is the part of the engine the subscriber drives.
type SaleRecorder interface {
	RecordSale(ctx context.Context, sale models.Sale) (*workflow.SaleOutcome, error)
}

// SaleSubscriber validates incoming sale events and records them.
type SaleSubscriber struct {
	recorder SaleRecorder
	schema   *gojsonschema.Schema
	log      zerolog.Logger
}

func NewSaleSubscriber(recorder SaleRecorder, log zerolog.Logger) (*SaleSubscriber, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(saleSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to create sale schema: %w", err)
	}
	return &SaleSubscriber{
		recorder: recorder,
		schema:   schema,
		log:      log.With().Str("component", "sale_subscriber").Logger(),
	}, nil
}

// Decode validates payload against the sale schema and parses it.
func (s *SaleSubscriber) Decode(payload []byte) (models.Sale, error) {
	var sale models.Sale
	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return sale, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return sale, fmt.Errorf("%w: %s", ErrInvalidPayload, strings.Join(problems, "; "))
	}
	if err := json.Unmarshal(payload, &sale); err != nil {
		return sale, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return sale, nil
}

// Handle processes one raw sale event.
func (s *SaleSubscriber) Handle(ctx context.Context, payload []byte) (*workflow.SaleOutcome, error) {
	sale, err := s.Decode(payload)
	if err != nil {
		return nil, err
	}
	out, err := s.recorder.RecordSale(ctx, sale)
	if err != nil {
		return nil, fmt.Errorf("record sale %s: %w", sale.ID, err)
	}
	return out, nil
}

// Subscribe consumes subject on conn until ctx is cancelled. Invalid or
// rejected events are logged and dropped.
func (s *SaleSubscriber) Subscribe(ctx context.Context, conn *nats.Conn, subject string) (*nats.Subscription, error) {
	sub, err := conn.Subscribe(subject, func(msg *nats.Msg) {
		out, err := s.Handle(ctx, msg.Data)
		if err != nil {
			s.log.Warn().Err(err).Str("subject", msg.Subject).Msg("sale event dropped")
			return
		}
		s.log.Info().
			Ints64("updated_tasks", out.UpdatedTasks).
			Ints64("completed_tasks", out.Completed).
			Int("notifications", out.Notifications).
			Msg("sale event applied")
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", subject, err)
	}

	go func() {
		<-ctx.Done()
		if err := sub.Unsubscribe(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
			s.log.Warn().Err(err).Msg("failed to unsubscribe")
		}
	}()

	s.log.Info().Str("subject", subject).Msg("subscribed to sale events")
	return sub, nil
}
