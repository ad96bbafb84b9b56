// Package calendar books video meetings on an external calendar.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/jwalitptl/healthapp-api/internal/config"
	"github.com/jwalitptl/healthapp-api/pkg/circuitbreaker"
	"github.com/jwalitptl/healthapp-api/pkg/metrics"
)

// ErrNoMeetingLink is returned when the event was created without a video conference.
var ErrNoMeetingLink = errors.New("calendar event has no meeting link")

const conferenceTypeMeet = "hangoutsMeet"

// Meeting describes the event to create.
type Meeting struct {
	RequestID   string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
}

// Client creates a calendar event with a video conference and returns its join link.
type Client interface {
	CreateMeeting(ctx context.Context, m Meeting) (string, error)
}

// GoogleClient inserts events through the Calendar API. Its HTTP client refreshes the access token from the
// configured refresh token whenever the current one has expired.
type GoogleClient struct {
	events     *gcal.EventsService
	calendarID string
	timeZone   string
	breaker    *circuitbreaker.CircuitBreaker
	metrics    *metrics.Metrics
	logger     zerolog.Logger
}

// NewGoogleClient builds the OAuth2 client once; ctx bounds every later token refresh.
func NewGoogleClient(ctx context.Context, cfg config.CalendarConfig, m *metrics.Metrics, logger zerolog.Logger) (*GoogleClient, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	endpoint := google.Endpoint
	if cfg.TokenURL != "" {
		endpoint.TokenURL = cfg.TokenURL
	}
	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     endpoint,
		Scopes:       []string{gcal.CalendarEventsScope},
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: timeout})
	httpClient := oauthCfg.Client(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})
	httpClient.Timeout = timeout

	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(strings.TrimRight(cfg.BaseURL, "/")+"/"))
	}
	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return &GoogleClient{
		events:     svc.Events,
		calendarID: cfg.CalendarID,
		timeZone:   cfg.TimeZone,
		breaker: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:                "calendar",
			MaxRequests:         1,
			Interval:            time.Minute,
			Timeout:             30 * time.Second,
			ConsecutiveFailures: 5,
		}),
		metrics: m,
		logger:  logger.With().Str("component", "calendar").Logger(),
	}, nil
}

func (c *GoogleClient) CreateMeeting(ctx context.Context, m Meeting) (string, error) {
	timer := prometheus.NewTimer(c.metrics.CalendarLatency)
	defer timer.ObserveDuration()

	var link string
	err := c.breaker.Execute(func() error {
		var err error
		link, err = c.insertEvent(ctx, m)
		return err
	})

	result := "success"
	if err != nil {
		result = "error"
		c.logger.Error().Err(err).Str("request_id", m.RequestID).Msg("calendar event creation failed")
	}
	c.metrics.CalendarRequests.WithLabelValues(result).Inc()
	return link, err
}

func (c *GoogleClient) insertEvent(ctx context.Context, m Meeting) (string, error) {
	event := &gcal.Event{
		Summary:     m.Summary,
		Description: m.Description,
		Start:       &gcal.EventDateTime{DateTime: m.Start.Format(time.RFC3339), TimeZone: c.timeZone},
		End:         &gcal.EventDateTime{DateTime: m.End.Format(time.RFC3339), TimeZone: c.timeZone},
		ConferenceData: &gcal.ConferenceData{
			CreateRequest: &gcal.CreateConferenceRequest{
				RequestId:             m.RequestID,
				ConferenceSolutionKey: &gcal.ConferenceSolutionKey{Type: conferenceTypeMeet},
			},
		},
	}

	created, err := c.events.Insert(c.calendarID, event).ConferenceDataVersion(1).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("calendar api error: status %d: %s", apiErr.Code, apiErr.Message)
		}
		return "", fmt.Errorf("calendar request failed: %w", err)
	}

	link := meetingLink(created)
	if link == "" {
		return "", ErrNoMeetingLink
	}
	c.logger.Info().Str("event_id", created.Id).Str("request_id", m.RequestID).Msg("calendar event created")
	return link, nil
}

// meetingLink prefers hangoutLink and falls back to the first video entry point.
func meetingLink(e *gcal.Event) string {
	if e.HangoutLink != "" {
		return e.HangoutLink
	}
	if e.ConferenceData == nil {
		return ""
	}
	for _, ep := range e.ConferenceData.EntryPoints {
		if ep.EntryPointType == "video" && ep.Uri != "" {
			return ep.Uri
		}
	}
	return ""
}
