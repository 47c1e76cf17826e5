// Package webhook ingests payment provider webhooks and applies them to
// reservations.
package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lugspot/lugspot/internal/payment/adapters"
	paymentdomain "github.com/lugspot/lugspot/internal/payment/domain"
	reservationdomain "github.com/lugspot/lugspot/internal/reservation/domain"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node

	repo           paymentdomain.Repository
	adapters       *adapters.Registry
	reservationSvc reservationdomain.Service
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node

	Repo           paymentdomain.Repository
	Adapters       *adapters.Registry
	ReservationSvc reservationdomain.Service
}

func New(p ServiceParam) paymentdomain.Service {
	return &Service{
		db:             p.DB,
		log:            p.Log.Named("payment.webhook"),
		genID:          p.GenID,
		repo:           p.Repo,
		adapters:       p.Adapters,
		reservationSvc: p.ReservationSvc,
	}
}

func (s *Service) Ingest(ctx context.Context, provider string, payload []byte, headers http.Header) error {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		return paymentdomain.ErrInvalidProvider
	}
	adapter, ok := s.adapters.Get(provider)
	if !ok {
		return paymentdomain.ErrProviderNotFound
	}
	if !json.Valid(payload) {
		return paymentdomain.ErrInvalidPayload
	}

	if err := adapter.Verify(ctx, payload, headers); err != nil {
		s.log.Warn("webhook signature rejected", zap.String("provider", provider))
		return err
	}

	event, err := adapter.Parse(ctx, payload)
	if err != nil {
		if errors.Is(err, paymentdomain.ErrEventIgnored) {
			s.recordEvent(ctx, provider, "", "ignored", "unhandled event type", payload)
			return nil
		}
		s.recordEvent(ctx, provider, "", "failed", err.Error(), payload)
		return err
	}

	// Providers retry deliveries; the first processed event wins.
	existing, err := s.repo.FindPaymentByProviderEventID(ctx, s.db, provider, event.ProviderEventID)
	if err != nil {
		return err
	}
	if existing != nil {
		s.recordEvent(ctx, provider, event.ProviderEventID, "ignored", "duplicate delivery", payload)
		return nil
	}

	if err := s.apply(ctx, event); err != nil {
		s.recordEvent(ctx, provider, event.ProviderEventID, "failed", err.Error(), payload)
		return err
	}

	s.recordEvent(ctx, provider, event.ProviderEventID, "processed", "", payload)
	return nil
}

func (s *Service) apply(ctx context.Context, event *paymentdomain.PaymentEvent) error {
	reservation, err := s.reservationSvc.GetByReference(ctx, event.Reference)
	if err != nil {
		return err
	}

	if event.Type == paymentdomain.EventTypePaymentSucceeded {
		if _, err := s.reservationSvc.ConfirmByReference(ctx, event.Reference); err != nil {
			return err
		}
	} else {
		// A failed charge leaves the hold pending; the scheduler expires it
		// if no retry succeeds in time.
		s.log.Warn("payment failed for reservation",
			zap.String("reference", event.Reference),
			zap.String("provider", event.Provider))
	}

	reservationID := reservation.ID
	payment := &paymentdomain.Payment{
		ID:                s.genID.Generate(),
		TenantID:          reservation.TenantID,
		ReservationID:     &reservationID,
		Provider:          event.Provider,
		ProviderEventID:   event.ProviderEventID,
		ProviderPaymentID: event.ProviderPaymentID,
		Type:              event.Type,
		AmountMinor:       event.AmountMinor,
		Currency:          event.Currency,
		OccurredAt:        event.OccurredAt,
	}
	if err := s.repo.InsertPayment(ctx, s.db, payment); err != nil {
		return err
	}

	s.log.Info("payment event applied",
		zap.String("provider", event.Provider),
		zap.String("event_id", event.ProviderEventID),
		zap.String("type", event.Type),
		zap.String("reference", event.Reference),
		zap.Int64("amount_minor", event.AmountMinor))
	return nil
}

func (s *Service) ListPayments(ctx context.Context, tenantID snowflake.ID) ([]*paymentdomain.Payment, error) {
	return s.repo.ListPaymentsByTenant(ctx, s.db, tenantID)
}

func (s *Service) recordEvent(ctx context.Context, provider, eventID, status, detail string, payload []byte) {
	record := &paymentdomain.WebhookEvent{
		ID:       s.genID.Generate(),
		Provider: provider,
		EventID:  eventID,
		Status:   status,
		Detail:   detail,
		Payload:  maskPayload(payload),
	}
	if err := s.repo.InsertWebhookEvent(ctx, s.db, record); err != nil {
		s.log.Error("failed to record webhook event", zap.Error(err))
	}
}

// maskPayload strips card and billing details before the payload is stored.
func maskPayload(raw []byte) []byte {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return raw
	}
	maskMap(obj)
	masked, err := json.Marshal(obj)
	if err != nil {
		return raw
	}
	return masked
}

func maskMap(m map[string]any) {
	for k, v := range m {
		switch strings.ToLower(k) {
		case "card", "billing_details", "payment_method_details":
			m[k] = "***"
		default:
			if nested, ok := v.(map[string]any); ok {
				maskMap(nested)
			} else if arr, ok := v.([]any); ok {
				for _, item := range arr {
					if itemMap, ok := item.(map[string]any); ok {
						maskMap(itemMap)
					}
				}
			}
		}
	}
}
