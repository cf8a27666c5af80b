package push

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const DefaultFCMEndpoint = "https://fcm.googleapis.com"

type FCMConfig struct {
	ProjectID  string
	Endpoint   string // DefaultFCMEndpoint when empty
	RatePerSec float64
	Timeout    time.Duration
}

type fcmSender struct {
	url     string
	httpc   *http.Client
	limiter *rate.Limiter
}

// NewFCM returns a Sender for the FCM HTTP v1 API. Requests are authorised
// with tokens from ts; ctx only scopes token refreshes.
func NewFCM(ctx context.Context, cfg FCMConfig, ts oauth2.TokenSource) Sender {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultFCMEndpoint
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	limit := rate.Inf
	if cfg.RatePerSec > 0 {
		limit = rate.Limit(cfg.RatePerSec)
	}

	httpc := oauth2.NewClient(ctx, ts)
	httpc.Timeout = timeout
	return &fcmSender{
		url:     strings.TrimRight(endpoint, "/") + "/v1/projects/" + cfg.ProjectID + "/messages:send",
		httpc:   httpc,
		limiter: rate.NewLimiter(limit, 1),
	}
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type fcmMessage struct {
	Token        string            `json:"token"`
	Notification fcmNotification   `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

// SendError is a non-2xx answer from FCM.
type SendError struct {
	StatusCode int
	Status     string // e.g. NOT_FOUND
	ErrorCode  string // FcmError code, e.g. UNREGISTERED
	Message    string
}

func (e *SendError) Error() string {
	code := e.ErrorCode
	if code == "" {
		code = e.Status
	}
	return fmt.Sprintf("fcm: http %d %s: %s", e.StatusCode, code, e.Message)
}

// IsUnregistered reports whether the device token is no longer valid.
func IsUnregistered(err error) bool {
	var se *SendError
	return errors.As(err, &se) && se.ErrorCode == "UNREGISTERED"
}

func (s *fcmSender) Send(ctx context.Context, m Message) (string, error) {
	if m.Token == "" {
		return "", errors.New("fcm: empty device token")
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	b, err := json.Marshal(map[string]any{"message": fcmMessage{
		Token:        m.Token,
		Notification: fcmNotification{Title: m.Title, Body: m.Body},
		Data:         m.Data,
	}})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("fcm: %w", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("fcm: read response: %w", err)
	}

	if resp.StatusCode/100 != 2 {
		return "", parseError(resp.StatusCode, raw)
	}
	var out struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("fcm: decode response: %w", err)
	}
	return out.Name, nil
}

func parseError(code int, raw []byte) error {
	se := &SendError{StatusCode: code, Message: strings.TrimSpace(string(raw))}
	var body struct {
		Error struct {
			Message string `json:"message"`
			Status  string `json:"status"`
			Details []struct {
				ErrorCode string `json:"errorCode"`
			} `json:"details"`
		} `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Error.Message != "" {
		se.Message = body.Error.Message
		se.Status = body.Error.Status
		for _, d := range body.Error.Details {
			if d.ErrorCode != "" {
				se.ErrorCode = d.ErrorCode
				break
			}
		}
	}
	return se
}
