package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/nexus-group/quote-intel/internal/config"
)

// AlertType identifies the kind of alert.
type AlertType string

const (
	AlertHighRiskShare AlertType = "high_risk_share"
	AlertLowAvgScore   AlertType = "low_avg_trust_score"
	AlertExpiredQuotes AlertType = "expired_quotes"
)

// minSampleSize is the smallest window that triggers ratio alerts.
const minSampleSize = 5

// Alert represents a single alert to be sent.
type Alert struct {
	Type      AlertType      `json:"type"`
	Severity  string         `json:"severity"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Alerter evaluates a MetricsSnapshot against configured thresholds
// and sends alerts via webhook when thresholds are breached.
type Alerter struct {
	cfg    config.MonitoringConfig
	client *http.Client
}

// NewAlerter creates a new Alerter with the given monitoring config.
func NewAlerter(cfg config.MonitoringConfig) *Alerter {
	return &Alerter{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Evaluate checks the snapshot against thresholds and returns any alerts.
func (a *Alerter) Evaluate(snap *MetricsSnapshot) []Alert {
	var alerts []Alert
	now := time.Now().UTC()

	// Check the share of high-risk vendors in the window.
	if snap.AnalysesTotal >= minSampleSize && snap.HighRiskShare > a.cfg.HighRiskShareThreshold {
		alerts = append(alerts, Alert{
			Type:     AlertHighRiskShare,
			Severity: "high",
			Message: fmt.Sprintf(
				"High-risk vendors make up %.1f%% of analyses, above the %.1f%% threshold (%d of %d in last %dh)",
				snap.HighRiskShare*100, a.cfg.HighRiskShareThreshold*100,
				snap.HighRisk, snap.AnalysesTotal, snap.LookbackHours,
			),
			Details: map[string]any{
				"high_risk_share": snap.HighRiskShare,
				"threshold":       a.cfg.HighRiskShareThreshold,
				"high_risk":       snap.HighRisk,
				"analyses_total":  snap.AnalysesTotal,
			},
			Timestamp: now,
		})
	}

	// Check the average trust score floor.
	if a.cfg.MinAvgTrustScore > 0 && snap.AnalysesTotal >= minSampleSize && snap.AvgTrustScore < a.cfg.MinAvgTrustScore {
		alerts = append(alerts, Alert{
			Type:     AlertLowAvgScore,
			Severity: "high",
			Message: fmt.Sprintf(
				"Average trust score %.1f fell below floor %.1f across %d analyses in last %dh",
				snap.AvgTrustScore, a.cfg.MinAvgTrustScore,
				snap.AnalysesTotal, snap.LookbackHours,
			),
			Details: map[string]any{
				"avg_trust_score": snap.AvgTrustScore,
				"floor":           a.cfg.MinAvgTrustScore,
				"analyses_total":  snap.AnalysesTotal,
			},
			Timestamp: now,
		})
	}

	// Check for expired quotations still in play.
	if snap.ExpiredQuotes > 0 {
		alerts = append(alerts, Alert{
			Type:     AlertExpiredQuotes,
			Severity: "medium",
			Message: fmt.Sprintf(
				"%d analyzed quotation(s) past their validity date in last %dh",
				snap.ExpiredQuotes, snap.LookbackHours,
			),
			Details: map[string]any{
				"expired_quotes": snap.ExpiredQuotes,
				"analyses_total": snap.AnalysesTotal,
			},
			Timestamp: now,
		})
	}

	return alerts
}

// SendAlerts delivers alerts to the configured webhook URL.
// Returns the number of alerts successfully sent.
func (a *Alerter) SendAlerts(ctx context.Context, alerts []Alert) int {
	if a.cfg.WebhookURL == "" || len(alerts) == 0 {
		return 0
	}

	sent := 0
	for _, alert := range alerts {
		if err := a.sendWebhook(ctx, alert); err != nil {
			zap.L().Error("monitoring: failed to send alert",
				zap.String("type", string(alert.Type)),
				zap.Error(err),
			)
			continue
		}
		zap.L().Info("monitoring: alert sent",
			zap.String("type", string(alert.Type)),
			zap.String("severity", alert.Severity),
		)
		sent++
	}
	return sent
}

// maxWebhookAttempts bounds delivery retries per alert.
const maxWebhookAttempts = 3

// sendWebhook posts a single alert, retrying transient failures with
// jittered exponential backoff.
func (a *Alerter) sendWebhook(ctx context.Context, alert Alert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return eris.Wrap(err, "monitoring: marshal alert")
	}

	backoff := 500 * time.Millisecond
	var lastErr error
	for attempt := 0; attempt < maxWebhookAttempts; attempt++ {
		if attempt > 0 {
			jitter := time.Duration(rand.Int64N(int64(backoff / 2)))
			timer := time.NewTimer(backoff + jitter)
			select {
			case <-ctx.Done():
				timer.Stop()
				return lastErr
			case <-timer.C:
			}
			backoff *= 2
		}

		status, err := a.post(ctx, payload)
		if err != nil {
			lastErr = err
			continue
		}
		if status < 400 {
			return nil
		}
		lastErr = eris.Errorf("monitoring: webhook returned status %d", status)
		if !retryableStatus(status) {
			return lastErr
		}
	}
	return lastErr
}

func (a *Alerter) post(ctx context.Context, payload []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return 0, eris.Wrap(err, "monitoring: create webhook request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return 0, eris.Wrap(err, "monitoring: webhook request")
	}
	defer resp.Body.Close() //nolint:errcheck
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusRequestTimeout,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
