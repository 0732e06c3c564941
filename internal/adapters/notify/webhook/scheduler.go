package webhook

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"receta-segura/internal/platform/httpclient"
	"receta-segura/internal/ports/notify"
)

var (
	ErrNotConfigured = errors.New("webhook scheduler not configured")
)

// Scheduler implementa notify.ReminderScheduler mandando cada recordatorio
// como POST JSON a un endpoint externo (el que sepa entregar el aviso).
type Scheduler struct {
	url    string
	client *httpclient.Client
}

func NewScheduler(url string, timeout time.Duration) *Scheduler {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil
	}
	return &Scheduler{
		url:    url,
		client: httpclient.New(timeout),
	}
}

func (s *Scheduler) IsConfigured() bool {
	return s != nil && s.url != "" && s.client != nil
}

func (s *Scheduler) Schedule(ctx context.Context, r notify.Reminder) error {
	if !s.IsConfigured() {
		return ErrNotConfigured
	}
	// El payload es el Reminder tal cual; el upstream decide cómo y cuándo
	// entregar. No hay retry: el caller trata esto como best-effort.
	return s.client.DoJSON(ctx, http.MethodPost, s.url, nil, r, nil)
}
