package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"webhook-chat-be/internal/constant"
	"webhook-chat-be/internal/entity"
	"webhook-chat-be/internal/pkg/logger"

	"github.com/google/uuid"
)

// Principal identifies the user on whose behalf a dispatch runs.
type Principal struct {
	Id    uuid.UUID
	Email string
}

// Result carries the normalized reply text. Content may be empty when the
// endpoint answered 2xx with an unparseable or blank body; the caller decides
// whether an empty reply is worth recording.
type Result struct {
	Content string
}

type payload struct {
	User      payloadUser       `json:"user"`
	Session   payloadSession    `json:"session"`
	Message   payloadMessage    `json:"message"`
	Variables map[string]string `json:"variables"`
}

type payloadUser struct {
	Id    string `json:"id"`
	Email string `json:"email"`
}

type payloadSession struct {
	Id string `json:"id"`
}

type payloadMessage struct {
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// Dispatcher delivers chat messages to a user-configured endpoint: one POST,
// one deadline, one outcome. The deadline race is terminal; a late settlement
// is drained, logged and dropped.
type Dispatcher struct {
	client  *http.Client
	timeout time.Duration
	log     logger.ILogger

	// generation tags each dispatch so discarded late settlements are
	// attributable in the isolated log.
	generation atomic.Uint64
}

func NewDispatcher(timeout time.Duration, log logger.ILogger) *Dispatcher {
	return &Dispatcher{
		// The race below owns the deadline; the client itself stays unbounded
		// so late settlements can still be observed and logged.
		client:  &http.Client{},
		timeout: timeout,
		log:     log,
	}
}

// Send posts the message to the endpoint and returns the normalized reply.
// A nil result with a nil error means no endpoint is configured; the chat
// flow continues without a reply. ErrTimeout and *RejectedError are the two
// failure shapes.
func (d *Dispatcher) Send(ctx context.Context, url string, variables map[string]string, principal Principal, sess *entity.ChatSession, msg *entity.ChatMessage) (*Result, error) {
	if strings.TrimSpace(url) == "" {
		return nil, nil
	}

	body := payload{
		User: payloadUser{
			Id:    principal.Id.String(),
			Email: principal.Email,
		},
		Session: payloadSession{
			Id: sess.Id.String(),
		},
		Message: payloadMessage{
			Content:   msg.Content,
			Timestamp: time.UnixMilli(msg.Timestamp).UTC().Format(time.RFC3339),
		},
		Variables: variables,
	}

	return d.dispatch(ctx, url, body)
}

// SendTest fires the connectivity probe. It shares the full dispatch path,
// deadline race included, so a passing test means the real flow works.
func (d *Dispatcher) SendTest(ctx context.Context, url string, variables map[string]string, principal Principal) (*Result, error) {
	if strings.TrimSpace(url) == "" {
		return nil, nil
	}

	body := payload{
		User: payloadUser{
			Id:    principal.Id.String(),
			Email: principal.Email,
		},
		Message: payloadMessage{
			Content:   constant.DispatchTestMessage,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
		Variables: variables,
	}

	return d.dispatch(ctx, url, body)
}

type outcome struct {
	result *Result
	err    error
}

func (d *Dispatcher) dispatch(ctx context.Context, url string, body payload) (*Result, error) {
	gen := d.generation.Add(1)
	started := time.Now()

	d.log.Info("dispatch", "posting to webhook", map[string]interface{}{
		"generation": gen,
		"url":        url,
	})

	// Buffered so the worker never blocks after the deadline already won.
	settled := make(chan outcome, 1)
	go func() {
		settled <- d.post(ctx, url, body)
	}()

	timer := time.NewTimer(d.timeout)
	defer timer.Stop()

	select {
	case out := <-settled:
		if out.err != nil {
			d.log.Error("dispatch", "webhook call failed", map[string]interface{}{
				"generation": gen,
				"url":        url,
				"elapsed_ms": time.Since(started).Milliseconds(),
				"error":      out.err.Error(),
			})
			return nil, out.err
		}
		d.log.Info("dispatch", "webhook call succeeded", map[string]interface{}{
			"generation": gen,
			"url":        url,
			"elapsed_ms": time.Since(started).Milliseconds(),
		})
		return out.result, nil
	case <-timer.C:
		// Terminal. Drain the worker in the background so a late settlement
		// is accounted for in the log but never reaches the caller.
		go func() {
			out := <-settled
			details := map[string]interface{}{
				"generation": gen,
				"url":        url,
				"elapsed_ms": time.Since(started).Milliseconds(),
			}
			if out.err != nil {
				details["error"] = out.err.Error()
			}
			d.log.Warn("dispatch", "discarded late webhook settlement", details)
		}()
		d.log.Error("dispatch", "webhook timed out", map[string]interface{}{
			"generation": gen,
			"url":        url,
			"timeout_ms": d.timeout.Milliseconds(),
		})
		return nil, ErrTimeout
	}
}

func (d *Dispatcher) post(ctx context.Context, url string, body payload) outcome {
	raw, err := json.Marshal(body)
	if err != nil {
		return outcome{err: &RejectedError{Body: err.Error()}}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return outcome{err: &RejectedError{Body: err.Error()}}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return outcome{err: &RejectedError{Body: err.Error()}}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return outcome{err: &RejectedError{Status: resp.StatusCode, Body: err.Error()}}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return outcome{err: &RejectedError{Status: resp.StatusCode, Body: string(respBody)}}
	}

	return outcome{result: &Result{Content: normalize(respBody)}}
}

// replyKeys is the probe order for object-shaped replies; the first key
// holding a string wins.
var replyKeys = [...]string{"output", "message", "response", "text", "content"}

// normalize extracts human-readable reply text from whatever shape the
// endpoint answered with. Unparseable bodies and falsy scalars (null, false,
// 0) normalize to empty rather than leaking raw bytes into the chat.
func normalize(body []byte) string {
	var decoded interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return ""
	}

	switch v := decoded.(type) {
	case nil:
		return ""
	case bool:
		if !v {
			return ""
		}
	case float64:
		if v == 0 {
			return ""
		}
	case string:
		return v
	case map[string]interface{}:
		for _, key := range replyKeys {
			if s, ok := v[key].(string); ok {
				return s
			}
		}
	}

	// No recognizable field: pretty-print the whole reply so nothing is
	// silently swallowed.
	pretty, err := json.MarshalIndent(decoded, "", "  ")
	if err != nil {
		return ""
	}
	return string(pretty)
}
