package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gcal "google.golang.org/api/calendar/v3"

	"github.com/jwalitptl/healthapp-api/internal/config"
	"github.com/jwalitptl/healthapp-api/pkg/metrics"
)

// fakeGoogle serves both the OAuth2 token endpoint and the Calendar events endpoint.
type fakeGoogle struct {
	t         *testing.T
	expiresIn int
	eventBody string
	eventCode int
	tokenCode int

	mu         sync.Mutex
	refreshes  int
	authHeader []string
}

func newFakeGoogle(t *testing.T, expiresIn int) *fakeGoogle {
	return &fakeGoogle{
		t:         t,
		expiresIn: expiresIn,
		eventBody: `{"id":"evt1","hangoutLink":"https://meet.google.com/abc-defg-hij"}`,
		eventCode: http.StatusOK,
		tokenCode: http.StatusOK,
	}
}

func (f *fakeGoogle) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/token":
		require.NoError(f.t, r.ParseForm())
		assert.Equal(f.t, "refresh_token", r.PostForm.Get("grant_type"))
		assert.Equal(f.t, "refresh-1", r.PostForm.Get("refresh_token"))
		if f.tokenCode != http.StatusOK {
			w.WriteHeader(f.tokenCode)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		f.refreshes++
		_, _ = fmt.Fprintf(w, `{"access_token":"access-%d","token_type":"Bearer","expires_in":%d}`, f.refreshes, f.expiresIn)
	case "/calendars/primary/events":
		f.authHeader = append(f.authHeader, r.Header.Get("Authorization"))
		w.WriteHeader(f.eventCode)
		_, _ = w.Write([]byte(f.eventBody))
	default:
		http.NotFound(w, r)
	}
}

func newTestClient(t *testing.T, url string) *GoogleClient {
	client, err := NewGoogleClient(context.Background(), config.CalendarConfig{
		BaseURL:      url,
		TokenURL:     url + "/token",
		CalendarID:   "primary",
		ClientID:     "client-1",
		ClientSecret: "secret-1",
		RefreshToken: "refresh-1",
		TimeZone:     "Asia/Colombo",
		Timeout:      time.Second,
	}, metrics.New("test"), zerolog.Nop())
	require.NoError(t, err)
	return client
}

func testMeeting() Meeting {
	ist := time.FixedZone("+0530", 5*3600+1800)
	return Meeting{
		RequestID:   "meet-12",
		Summary:     "Medical Consultation",
		Description: "Online medical consultation",
		Start:       time.Date(2024, 12, 1, 14, 30, 0, 0, ist),
		End:         time.Date(2024, 12, 1, 15, 0, 0, 0, ist),
	}
}

func TestCreateMeeting_ReturnsHangoutLink(t *testing.T) {
	fake := newFakeGoogle(t, 3600)
	mux := http.NewServeMux()
	mux.Handle("/token", fake)
	mux.HandleFunc("/calendars/primary/events", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "1", r.URL.Query().Get("conferenceDataVersion"))

		var body gcal.Event
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Medical Consultation", body.Summary)
		assert.Equal(t, "meet-12", body.ConferenceData.CreateRequest.RequestId)
		assert.Equal(t, "hangoutsMeet", body.ConferenceData.CreateRequest.ConferenceSolutionKey.Type)
		assert.Equal(t, "2024-12-01T14:30:00+05:30", body.Start.DateTime)
		assert.Equal(t, "Asia/Colombo", body.End.TimeZone)

		fake.ServeHTTP(w, r)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	link, err := newTestClient(t, srv.URL).CreateMeeting(context.Background(), testMeeting())
	require.NoError(t, err)
	assert.Equal(t, "https://meet.google.com/abc-defg-hij", link)
	assert.Equal(t, []string{"Bearer access-1"}, fake.authHeader)
}

func TestCreateMeeting_RefreshesExpiredToken(t *testing.T) {
	// Tokens that expire within the refresh window are treated as already expired.
	fake := newFakeGoogle(t, 1)
	srv := httptest.NewServer(fake)
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	for i := 0; i < 2; i++ {
		_, err := client.CreateMeeting(context.Background(), testMeeting())
		require.NoError(t, err)
	}

	assert.Equal(t, 2, fake.refreshes)
	assert.Equal(t, []string{"Bearer access-1", "Bearer access-2"}, fake.authHeader)
}

func TestCreateMeeting_ReusesValidToken(t *testing.T) {
	fake := newFakeGoogle(t, 3600)
	srv := httptest.NewServer(fake)
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	for i := 0; i < 3; i++ {
		_, err := client.CreateMeeting(context.Background(), testMeeting())
		require.NoError(t, err)
	}

	assert.Equal(t, 1, fake.refreshes)
	assert.Equal(t, []string{"Bearer access-1", "Bearer access-1", "Bearer access-1"}, fake.authHeader)
}

func TestCreateMeeting_RefreshRejected(t *testing.T) {
	fake := newFakeGoogle(t, 3600)
	fake.tokenCode = http.StatusBadRequest
	srv := httptest.NewServer(fake)
	defer srv.Close()

	link, err := newTestClient(t, srv.URL).CreateMeeting(context.Background(), testMeeting())
	assert.Error(t, err)
	assert.Empty(t, link)
	assert.Empty(t, fake.authHeader)
}

func TestCreateMeeting_FallsBackToVideoEntryPoint(t *testing.T) {
	fake := newFakeGoogle(t, 3600)
	fake.eventBody = `{"id":"evt1","conferenceData":{"entryPoints":[
		{"entryPointType":"phone","uri":"tel:+1"},
		{"entryPointType":"video","uri":"https://meet.example/x"}]}}`
	srv := httptest.NewServer(fake)
	defer srv.Close()

	link, err := newTestClient(t, srv.URL).CreateMeeting(context.Background(), testMeeting())
	require.NoError(t, err)
	assert.Equal(t, "https://meet.example/x", link)
}

func TestCreateMeeting_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"error":{"code":500,"message":"boom"}}`},
		{"unauthorized", http.StatusUnauthorized, `{"error":{"code":401,"message":"invalid credentials"}}`},
		{"no conference", http.StatusOK, `{"id":"evt1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeGoogle(t, 3600)
			fake.eventCode = tt.status
			fake.eventBody = tt.body
			srv := httptest.NewServer(fake)
			defer srv.Close()

			link, err := newTestClient(t, srv.URL).CreateMeeting(context.Background(), testMeeting())
			assert.Error(t, err)
			assert.Empty(t, link)
		})
	}
}
