package connectors

import (
	"context"
	"sync"

	"github.com/jordanlanch/listingpro/pkg/domain"
	"github.com/jordanlanch/listingpro/pkg/logger"
	"github.com/jordanlanch/listingpro/pkg/models"
	"github.com/jordanlanch/listingpro/pkg/storage"
)

// Service manages simulated outreach integrations. Nothing here talks to a
// real provider; a connection is a stored flag plus whatever credentials the
// user entered, so the UI can light up connected states across restarts.
type Service struct {
	mu    sync.Mutex
	store *storage.OverlayStore
	log   logger.Logger

	gmail    bool
	manychat bool
	vbout    bool
	vboutKey string
	twilio   *models.TwilioConfig
	smtp     *models.SMTPConfig
}

// NewService builds a connector service over the overlay store.
func NewService(store *storage.OverlayStore, log logger.Logger) *Service {
	return &Service{store: store, log: log}
}

// Load reads the stored connection flags and configs.
func (s *Service) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.Load(ctx, storage.KeyGmailConnected, &s.gmail)
	s.store.Load(ctx, storage.KeyManyChatConnected, &s.manychat)
	s.store.Load(ctx, storage.KeyVboutConnected, &s.vbout)
	s.store.Load(ctx, storage.KeyVboutAPIKey, &s.vboutKey)

	var tw models.TwilioConfig
	if s.store.Load(ctx, storage.KeyTwilioConfig, &tw) {
		s.twilio = &tw
	}
	var sm models.SMTPConfig
	if s.store.Load(ctx, storage.KeySMTPConfig, &sm) {
		s.smtp = &sm
	}
}

// Status reports which integrations are connected.
func (s *Service) Status() models.ConnectorStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.ConnectorStatus{
		Gmail:    s.gmail,
		Twilio:   s.twilio != nil,
		SMTP:     s.smtp != nil,
		ManyChat: s.manychat,
		Vbout:    s.vbout,
	}
}

// ConnectGmail marks the Gmail integration as connected.
func (s *Service) ConnectGmail(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gmail = true
	s.store.Save(ctx, storage.KeyGmailConnected, true)
}

// DisconnectGmail clears the Gmail connection.
func (s *Service) DisconnectGmail(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gmail = false
	s.store.Remove(ctx, storage.KeyGmailConnected)
}

// ConnectTwilio stores Twilio credentials and marks it connected.
func (s *Service) ConnectTwilio(ctx context.Context, cfg models.TwilioConfig) error {
	if cfg.AccountSID == "" || cfg.AuthToken == "" {
		return domain.NewValidationError("accountSid and authToken are required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.twilio = &cfg
	s.store.Save(ctx, storage.KeyTwilioConfig, cfg)
	return nil
}

// DisconnectTwilio removes the stored Twilio credentials.
func (s *Service) DisconnectTwilio(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.twilio = nil
	s.store.Remove(ctx, storage.KeyTwilioConfig)
}

// ConnectSMTP stores SMTP settings and marks it connected.
func (s *Service) ConnectSMTP(ctx context.Context, cfg models.SMTPConfig) error {
	if cfg.Host == "" || cfg.Port == 0 {
		return domain.NewValidationError("host and port are required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.smtp = &cfg
	s.store.Save(ctx, storage.KeySMTPConfig, cfg)
	return nil
}

// DisconnectSMTP removes the stored SMTP settings.
func (s *Service) DisconnectSMTP(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.smtp = nil
	s.store.Remove(ctx, storage.KeySMTPConfig)
}

// ConnectManyChat marks the ManyChat integration as connected.
func (s *Service) ConnectManyChat(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manychat = true
	s.store.Save(ctx, storage.KeyManyChatConnected, true)
}

// DisconnectManyChat clears the ManyChat connection.
func (s *Service) DisconnectManyChat(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manychat = false
	s.store.Remove(ctx, storage.KeyManyChatConnected)
}

// ConnectVbout stores the VBOUT api key and marks it connected.
func (s *Service) ConnectVbout(ctx context.Context, apiKey string) error {
	if apiKey == "" {
		return domain.NewValidationError("apiKey is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vbout = true
	s.vboutKey = apiKey
	s.store.Save(ctx, storage.KeyVboutConnected, true)
	s.store.Save(ctx, storage.KeyVboutAPIKey, apiKey)
	return nil
}

// DisconnectVbout clears the VBOUT connection and its key.
func (s *Service) DisconnectVbout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vbout = false
	s.vboutKey = ""
	s.store.Remove(ctx, storage.KeyVboutConnected)
	s.store.Remove(ctx, storage.KeyVboutAPIKey)
}
