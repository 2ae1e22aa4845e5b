package lunar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"saju-match/internal/config"
	"saju-match/internal/logging"
)

const okResponse = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<response><header><resultCode>00</resultCode><resultMsg>NORMAL SERVICE.</resultMsg></header>
<body><items><item><lunDay>25</lunDay><lunIljin>%s</lunIljin><lunLeapmonth>평</lunLeapmonth>
<lunMonth>11</lunMonth><lunSecha>기묘(己卯)</lunSecha><lunWolgeon>병자(丙子)</lunWolgeon><lunYear>1999</lunYear>
<solDay>01</solDay><solMonth>01</solMonth><solWeek>토</solWeek><solYear>2000</solYear></item></items>
<numOfRows>10</numOfRows><pageNo>1</pageNo><totalCount>1</totalCount></body></response>`

func testConfig(url string) config.LunarConfig {
	cfg := config.Default().Lunar
	cfg.BaseURL = url
	cfg.APIKey = "test-key"
	cfg.RatePerSecond = 0
	cfg.TimeoutMS = 2000
	return cfg
}

func TestClient_DayCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("solYear") != "2000" || q.Get("solMonth") != "01" || q.Get("solDay") != "01" || q.Get("ServiceKey") != "test-key" {
			t.Errorf("unexpected query %v", q)
		}
		fmt.Fprintf(w, okResponse, "무오(戊午)")
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), logging.Nop())
	code, err := c.DayCode(context.Background(), 2000, 1, 1)
	if err != nil {
		t.Fatalf("day code: %v", err)
	}
	if code != "무오(戊午)" {
		t.Errorf("expected 무오(戊午), got %q", code)
	}
}

func TestClient_Failures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"missing element": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<response><header><resultCode>00</resultCode></header><body><items/></body></response>`))
		},
		"service error": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<response><header><resultCode>30</resultCode><resultMsg>SERVICE KEY IS NOT REGISTERED ERROR.</resultMsg></header></response>`))
		},
		"not xml": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"json": true}`))
		},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()
			c := NewClient(testConfig(srv.URL), logging.Nop())
			_, err := c.DayCode(context.Background(), 2000, 1, 1)
			if !errors.Is(err, ErrExternalLookup) {
				t.Fatalf("expected ErrExternalLookup, got %v", err)
			}
		})
	}
}

func TestClient_BreakerOpens(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Breaker.FailureThreshold = 2
	c := NewClient(cfg, logging.Nop())
	for i := 0; i < 4; i++ {
		if _, err := c.DayCode(context.Background(), 2000, 1, 1); !errors.Is(err, ErrExternalLookup) {
			t.Fatalf("call %d: expected ErrExternalLookup, got %v", i, err)
		}
	}
	if calls.Load() != 2 {
		t.Errorf("expected breaker to stop calls after 2 failures, got %d", calls.Load())
	}
}

func TestParseDayCode(t *testing.T) {
	code, err := ParseDayCode([]byte(fmt.Sprintf(okResponse, " 갑자(甲子) ")))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if code != "갑자(甲子)" {
		t.Errorf("expected trimmed code, got %q", code)
	}
}

func TestOffline(t *testing.T) {
	s, b := DayPillar(2000, 1, 1)
	if s != 5 || b != 7 {
		t.Errorf("2000-01-01 should be 무오, got %d,%d", s, b)
	}
	code, err := Offline{}.DayCode(context.Background(), 2000, 1, 1)
	if err != nil || code != "무오(戊午)" {
		t.Errorf("offline code %q err=%v", code, err)
	}
	// the cycle repeats every 60 days: 2000-01-01 + 60 days = 2000-03-01
	s2, b2 := DayPillar(2000, 3, 1)
	if s2 != s || b2 != b {
		t.Errorf("expected 60-day cycle, got %d,%d", s2, b2)
	}
	s3, b3 := DayPillar(2000, 1, 2)
	if s3 != 6 || b3 != 8 {
		t.Errorf("2000-01-02 should be 기미, got %d,%d", s3, b3)
	}
}
