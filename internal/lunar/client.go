// Package lunar looks up the day pillar (일진) of a solar date, either from
// the KASI lunar calendar open API or from the sexagenary day cycle.
package lunar

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	xpp "github.com/mmcdole/goxpp"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"saju-match/internal/config"
	"saju-match/internal/fetcher"
	"saju-match/internal/logging"
	"saju-match/internal/metrics"
)

// ErrExternalLookup wraps every failure to obtain a day code from the service.
var ErrExternalLookup = errors.New("lunar calendar lookup failed")

// Source returns the two-character day code, e.g. "갑자(甲子)", of a solar date.
type Source interface {
	DayCode(ctx context.Context, year, month, day int) (string, error)
}

type Client struct {
	baseURL string
	apiKey  string
	http    *fetcher.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[[]byte]
	logger  *logging.Logger
}

func NewClient(cfg config.LunarConfig, logger *logging.Logger) *Client {
	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	threshold := cfg.Breaker.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	open := time.Duration(cfg.Breaker.OpenSeconds) * time.Second
	if open <= 0 {
		open = 30 * time.Second
	}
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	c := &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    fetcher.New(timeout, cfg.Retry),
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}
	c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "lunar",
		MaxRequests: 1,
		Timeout:     open,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("breaker state change",
				logging.Field{Key: "breaker", Val: name},
				logging.Field{Key: "from", Val: from.String()},
				logging.Field{Key: "to", Val: to.String()})
		},
	})
	return c
}

func (c *Client) DayCode(ctx context.Context, year, month, day int) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		metrics.LunarRequests.WithLabelValues("rejected").Inc()
		return "", fmt.Errorf("%w: %w", ErrExternalLookup, err)
	}

	start := time.Now()
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.http.Get(ctx, c.requestURL(year, month, day))
	})
	metrics.LunarRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		outcome := "error"
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			outcome = "rejected"
		}
		metrics.LunarRequests.WithLabelValues(outcome).Inc()
		return "", fmt.Errorf("%w: %04d-%02d-%02d: %w", ErrExternalLookup, year, month, day, err)
	}

	code, err := ParseDayCode(body)
	if err != nil {
		metrics.LunarRequests.WithLabelValues("error").Inc()
		return "", fmt.Errorf("%w: %04d-%02d-%02d: %w", ErrExternalLookup, year, month, day, err)
	}
	metrics.LunarRequests.WithLabelValues("ok").Inc()
	c.logger.Debug("lunar lookup",
		logging.Field{Key: "date", Val: fmt.Sprintf("%04d-%02d-%02d", year, month, day)},
		logging.Field{Key: "code", Val: code},
		logging.Field{Key: "elapsed_ms", Val: time.Since(start).Milliseconds()})
	return code, nil
}

func (c *Client) requestURL(year, month, day int) string {
	q := url.Values{}
	q.Set("solYear", fmt.Sprintf("%04d", year))
	q.Set("solMonth", fmt.Sprintf("%02d", month))
	q.Set("solDay", fmt.Sprintf("%02d", day))
	q.Set("ServiceKey", c.apiKey)
	sep := "?"
	if strings.Contains(c.baseURL, "?") {
		sep = "&"
	}
	return c.baseURL + sep + q.Encode()
}

// ParseDayCode extracts the lunIljin element from a getLunCalInfo response.
// A non-"00" resultCode or a missing element is an error.
func ParseDayCode(body []byte) (string, error) {
	p := xpp.NewXMLPullParser(bytes.NewReader(body), false, nil)
	var resultCode, resultMsg string
	for {
		ev, err := p.Next()
		if err != nil {
			return "", fmt.Errorf("parse response: %w", err)
		}
		if ev == xpp.EndDocument {
			break
		}
		if ev != xpp.StartTag {
			continue
		}
		switch p.Name {
		case "resultCode":
			if resultCode, err = p.NextText(); err != nil {
				return "", fmt.Errorf("parse resultCode: %w", err)
			}
		case "resultMsg":
			if resultMsg, err = p.NextText(); err != nil {
				return "", fmt.Errorf("parse resultMsg: %w", err)
			}
		case "lunIljin":
			if resultCode != "" && strings.TrimSpace(resultCode) != "00" {
				return "", fmt.Errorf("service error %s: %s", resultCode, resultMsg)
			}
			text, err := p.NextText()
			if err != nil {
				return "", fmt.Errorf("parse lunIljin: %w", err)
			}
			text = strings.TrimSpace(text)
			if text == "" {
				return "", errors.New("empty lunIljin")
			}
			return text, nil
		}
	}
	if resultCode != "" && strings.TrimSpace(resultCode) != "00" {
		return "", fmt.Errorf("service error %s: %s", resultCode, resultMsg)
	}
	return "", errors.New("lunIljin missing from response")
}
