package prayer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alnoor/community-platform/pkg/logger"
	"github.com/alnoor/community-platform/pkg/redis"
	"github.com/valyala/fasthttp"
)

// DefaultSchedule is the hardcoded fallback used whenever the timetable
// provider is unreachable or returns an unusable feed.
var DefaultSchedule = Schedule{
	Fajr:    "5:30 AM",
	Sunrise: "6:45 AM",
	Dhuhr:   "1:15 PM",
	Asr:     "4:45 PM",
	Maghrib: "6:30 PM",
	Isha:    "8:00 PM",
}

// DefaultHijriDate is shown when the provider does not supply one.
const DefaultHijriDate = "15 Safar 1447 AH"

type timetableResponse struct {
	Times map[string]string `json:"times"`
	Hijri string            `json:"hijri_date"`
}

// DaySchedule is a resolved timetable for one calendar date.
type DaySchedule struct {
	Date     string   `json:"date"`
	Times    Schedule `json:"times"`
	Hijri    string   `json:"hijri_date"`
	Fallback bool     `json:"fallback"`
}

type ProviderConfig struct {
	URL      string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// Provider fetches the daily timetable over HTTP and caches it in redis per
// calendar date, so the upstream is hit at most once a day per instance set.
type Provider struct {
	config ProviderConfig
	client *fasthttp.Client
	cache  redis.RedisAdapter
}

func NewProvider(config ProviderConfig, cache redis.RedisAdapter) *Provider {
	if config.Timeout == 0 {
		config.Timeout = 5 * time.Second
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = 24 * time.Hour
	}
	return &Provider{
		config: config,
		client: &fasthttp.Client{
			ReadTimeout:  config.Timeout,
			WriteTimeout: config.Timeout,
		},
		cache: cache,
	}
}

// Today returns the schedule for the given date, preferring the cache, then
// the provider, then the hardcoded default. The default is never cached so a
// recovered provider takes over on the next call.
func (p *Provider) Today(ctx context.Context, date time.Time) *DaySchedule {
	key := "prayer:schedule:" + date.Format("2006-01-02")

	if p.cache != nil {
		if raw, err := p.cache.Get(key); err == nil && len(raw) > 0 {
			var cached DaySchedule
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached
			}
		}
	}

	ds, err := p.fetch(ctx, date)
	if err != nil {
		logger.Warn("timetable provider unavailable, using default schedule", "error", err)
		return &DaySchedule{
			Date:     date.Format("2006-01-02"),
			Times:    DefaultSchedule,
			Hijri:    DefaultHijriDate,
			Fallback: true,
		}
	}

	if p.cache != nil {
		if raw, err := json.Marshal(ds); err == nil {
			_ = p.cache.Set(key, raw, p.config.CacheTTL)
		}
	}
	return ds
}

func (p *Provider) fetch(ctx context.Context, date time.Time) (*DaySchedule, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fmt.Sprintf("%s/api/v1/timetable?date=%s", p.config.URL, date.Format("2006-01-02")))
	req.Header.SetMethod(fasthttp.MethodGet)

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(p.config.Timeout)
	}
	if err := p.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var body timetableResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if err := validateFeed(body.Times); err != nil {
		return nil, err
	}

	hijri := body.Hijri
	if hijri == "" {
		hijri = DefaultHijriDate
	}

	return &DaySchedule{
		Date:  date.Format("2006-01-02"),
		Times: Schedule(body.Times),
		Hijri: hijri,
	}, nil
}

// validateFeed rejects feeds with missing or mangled entries before they hit
// the permissive parser.
func validateFeed(times map[string]string) error {
	for _, name := range Names {
		clock, ok := times[name]
		if !ok || clock == "" {
			return fmt.Errorf("feed is missing %s", name)
		}
		if name != Fajr && ParseClock(clock) == 0 {
			return fmt.Errorf("feed has unparseable time for %s: %q", name, clock)
		}
	}
	return nil
}
