package trigger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/httpclient"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/logger"
	"go.uber.org/zap"
)

// Event is the JSON body posted to automation webhooks.
type Event struct {
	Type       string    `json:"type"`
	RecordID   string    `json:"recordId"`
	PageID     string    `json:"pageId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Notifier posts events to a configured webhook URL without blocking callers.
type Notifier struct {
	httpClient httpclient.Client
	wg         sync.WaitGroup
}

// NewNotifier creates a webhook notifier
func NewNotifier(httpClient httpclient.Client) *Notifier {
	return &Notifier{httpClient: httpClient}
}

// CallAsync posts the event to targetURL in a goroutine.
// An empty URL disables the call. Failures are logged and never reach the caller.
func (n *Notifier) CallAsync(targetURL string, event Event) {
	if targetURL == "" {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		n.call(targetURL, event)
	}()
}

// Wait blocks until in-flight webhook calls finish or ctx expires.
func (n *Notifier) Wait(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}

func (n *Notifier) call(targetURL string, event Event) {
	body, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to encode trigger event", zap.Error(err), zap.String("type", event.Type))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, targetURL, bytes.NewReader(body))
	if err != nil {
		logger.Error("Failed to build trigger request", zap.Error(err), zap.String("url", targetURL))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		logger.Error("Failed to call trigger URL",
			zap.Error(err),
			zap.String("url", targetURL),
			zap.String("type", event.Type),
			zap.String("record_id", event.RecordID))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		logger.Info("Trigger URL called successfully",
			zap.String("type", event.Type),
			zap.String("record_id", event.RecordID),
			zap.Int("status_code", resp.StatusCode))
		return
	}

	logger.Warn("Trigger URL returned non-success status",
		zap.String("url", targetURL),
		zap.String("type", event.Type),
		zap.String("record_id", event.RecordID),
		zap.Int("status_code", resp.StatusCode))
}
