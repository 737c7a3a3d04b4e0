package trigger

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/artium/indicacoes-api/pkg/httpclient"
	"github.com/artium/indicacoes-api/pkg/logger"
	"go.uber.org/zap"
)

const callTimeout = 10 * time.Second

// CallAsync notifies downstream automation that a referral was stored.
// The referral id is appended to triggerURL as-is, so the URL usually ends in "?id=".
// Failures are logged and never reach the visitor.
func CallAsync(ctx context.Context, triggerURL, referralID string, httpClient httpclient.Client) {
	if triggerURL == "" {
		return
	}

	ctx = context.WithoutCancel(ctx)

	go func() {
		targetURL := fmt.Sprintf("%s%s", triggerURL, url.QueryEscape(referralID))
		fields := []zap.Field{zap.String("url", targetURL), zap.String("referral_id", referralID)}

		callCtx, cancel := context.WithTimeout(ctx, callTimeout)
		defer cancel()

		req, err := http.NewRequestWithContext(callCtx, http.MethodGet, targetURL, http.NoBody)
		if err != nil {
			logger.Error("Failed to build trigger request", append(fields, zap.Error(err))...)
			return
		}

		start := time.Now()
		resp, err := httpClient.Do(req)
		duration := time.Since(start).Seconds()
		if err != nil {
			logger.LogAPICall(ctx, "trigger", "referral_created", "error", duration, append(fields, zap.Error(err))...)
			return
		}
		defer resp.Body.Close()

		fields = append(fields, zap.Int("status_code", resp.StatusCode))
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			logger.LogAPICall(ctx, "trigger", "referral_created", "success", duration, fields...)
		} else {
			logger.Warn("Trigger URL returned non-success status", fields...)
		}
	}()
}
