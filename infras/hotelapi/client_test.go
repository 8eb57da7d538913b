package hotelapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontdesk/config"
	"frontdesk/infras/hotelapi"
	"frontdesk/infras/otel/mocks"
	"frontdesk/shared/failure"
)

func newClient(baseURL string) hotelapi.Client {
	cfg := &config.Config{}
	cfg.Backend.BaseURL = baseURL
	cfg.Backend.TimeoutSeconds = 2

	return hotelapi.New(cfg, mocks.NewOtel())
}

func TestClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/rooms/available", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("guests"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"roomNumber":"101"}]`))
	}))
	defer server.Close()

	client := newClient(server.URL)

	query := url.Values{}
	query.Set("guests", "2")

	var out []map[string]any
	err := client.Get(context.Background(), "/rooms/available", query, &out)

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "101", out[0]["roomNumber"])
}

func TestClient_PostSendsJSONBody(t *testing.T) {
	type payload struct {
		RoomID int64  `json:"roomId"`
		Name   string `json:"name"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var got payload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, payload{RoomID: 7, Name: "Ada Lovelace"}, got)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"bookingId":42}`))
	}))
	defer server.Close()

	client := newClient(server.URL)

	var out map[string]any
	err := client.Post(context.Background(), "/bookings", payload{RoomID: 7, Name: "Ada Lovelace"}, &out)

	require.NoError(t, err)
	assert.EqualValues(t, 42, out["bookingId"])
}

func TestClient_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{
			name:        "json message field",
			status:      http.StatusConflict,
			body:        `{"message":"room already booked"}`,
			wantMessage: "room already booked",
		},
		{
			name:        "json error field",
			status:      http.StatusBadRequest,
			body:        `{"error":"invalid date range"}`,
			wantMessage: "invalid date range",
		},
		{
			name:        "plain text body",
			status:      http.StatusInternalServerError,
			body:        "something broke",
			wantMessage: "something broke",
		},
		{
			name:        "empty body falls back to status text",
			status:      http.StatusNotFound,
			body:        "",
			wantMessage: http.StatusText(http.StatusNotFound),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newClient(server.URL)

			err := client.Get(context.Background(), "/rooms", nil, nil)

			require.Error(t, err)
			assert.Equal(t, failure.KindUpstream, failure.GetKind(err))
			assert.Equal(t, tt.status, failure.GetCode(err))
			assert.Contains(t, err.Error(), tt.wantMessage)
		})
	}
}

func TestClient_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := newClient(server.URL)

	err := client.Get(context.Background(), "/rooms", nil, nil)

	require.Error(t, err)
	assert.Equal(t, failure.KindNetwork, failure.GetKind(err))
}

func TestClient_DeleteIgnoresResponseBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/bookings/42", r.URL.Path)

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := newClient(server.URL)

	require.NoError(t, client.Delete(context.Background(), "/bookings/42"))
}
