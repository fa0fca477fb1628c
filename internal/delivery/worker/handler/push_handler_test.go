package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cargomatch/config"
	"cargomatch/internal/domain/constants"
	"cargomatch/internal/domain/service"
	"cargomatch/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

type stubDelivery struct {
	err error
	got *service.NotificationEvent
}

func (s *stubDelivery) Deliver(ctx context.Context, event *service.NotificationEvent) (*usecase.PushResult, error) {
	s.got = event
	if s.err != nil {
		return nil, s.err
	}

	return &usecase.PushResult{Devices: 1, Sent: 1}, nil
}

func newTestHandler(cfg *config.Config, delivery usecase.PushDeliveryUsecase) *PushHandler {
	if cfg == nil {
		cfg = &config.Config{}
	}

	return NewPushHandler(PushHandlerParams{
		Config:     cfg,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		DeliveryUC: delivery,
	})
}

func pushBody(t *testing.T, event *service.NotificationEvent) string {
	t.Helper()

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var msg PubSubMessage
	msg.Message.Data = base64.StdEncoding.EncodeToString(data)
	msg.Message.MessageID = "m-1"
	msg.Message.Attributes = map[string]string{"request_id": "req-from-publisher"}

	body, err := json.Marshal(msg)
	require.NoError(t, err)

	return string(body)
}

func post(h *PushHandler, body string, header map[string]string) *httptest.ResponseRecorder {
	e := echo.New()
	e.POST("/push", h.HandlePush)

	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestHandlePush(t *testing.T) {
	event := &service.NotificationEvent{NotificationID: "n-1", UserID: "6c1f7a61-8d0f-4b8e-9a55-2f3f1f0c9f11", Type: "booking_approved"}

	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{
			name:       "delivered",
			body:       pushBody(t, event),
			wantStatus: http.StatusOK,
		},
		{
			name:       "transient failure asks for redelivery",
			body:       pushBody(t, event),
			err:        errors.New("fcm unavailable"),
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "malformed event is acknowledged",
			body:       pushBody(t, event),
			err:        errors.Wrap(usecase.ErrMalformedEvent, "invalid user id"),
			wantStatus: http.StatusOK,
		},
		{
			name:       "data is not base64",
			body:       `{"message":{"data":"%%%"}}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delivery := &stubDelivery{err: tt.err}
			rec := post(newTestHandler(nil, delivery), tt.body, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusBadRequest {
				require.NotNil(t, delivery.got)
				assert.Equal(t, event.NotificationID, delivery.got.NotificationID)
			}
		})
	}
}

func TestHandlePushVerifiesToken(t *testing.T) {
	cfg := &config.Config{PubSub: &config.PubSubConfig{Provider: constants.PubSubProviderGoogle, PushAudience: "https://worker.example.com/push"}}
	cfg.Env.Env = "production"
	body := pushBody(t, &service.NotificationEvent{NotificationID: "n-1", UserID: "6c1f7a61-8d0f-4b8e-9a55-2f3f1f0c9f11"})

	t.Run("missing token", func(t *testing.T) {
		delivery := &stubDelivery{}
		rec := post(newTestHandler(cfg, delivery), body, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, delivery.got)
	})

	t.Run("configured audience and google issuer", func(t *testing.T) {
		delivery := &stubDelivery{}
		h := newTestHandler(cfg, delivery)
		var gotAudience string
		h.validate = func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
			gotAudience = audience

			return &idtoken.Payload{Issuer: "https://accounts.google.com", Claims: map[string]any{"email_verified": true}}, nil
		}

		rec := post(h, body, map[string]string{"Authorization": "Bearer signed"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "https://worker.example.com/push", gotAudience)
	})

	t.Run("foreign issuer", func(t *testing.T) {
		h := newTestHandler(cfg, &stubDelivery{})
		h.validate = func(context.Context, string, string) (*idtoken.Payload, error) {
			return &idtoken.Payload{Issuer: "https://evil.example.com"}, nil
		}

		rec := post(h, body, map[string]string{"Authorization": "Bearer signed"})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRetryable(t *testing.T) {
	assert.False(t, Retryable(nil))
	assert.False(t, Retryable(errors.Wrap(usecase.ErrMalformedEvent, "bad")))
	assert.True(t, Retryable(errors.New("timeout")))
}
