package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/advisordesk/report-engine/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSource_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/clients/client-1/profile", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"clientId":"client-1","personalInfo":{"fullName":"Asha Verma"}}]`))
	}))
	defer srv.Close()

	src := NewHTTPSource(domain.SourceProfile, srv.URL)
	records, err := src.Fetch(context.Background(), "client-1")
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "client-1", records[0]["clientId"])
}

func TestHTTPSource_EmptyBodyIsNotNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	src := NewHTTPSource(domain.SourceMeetings, srv.URL)
	records, err := src.Fetch(context.Background(), "client-1")
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestHTTPSource_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   domain.ErrorKind
	}{
		{"not found", http.StatusNotFound, "", domain.ErrorKindNotFound},
		{"unauthorized", http.StatusUnauthorized, "", domain.ErrorKindUnauthorized},
		{"forbidden", http.StatusForbidden, "", domain.ErrorKindUnauthorized},
		{"teapot", http.StatusTeapot, "", domain.ErrorKindUnknown},
		{"malformed payload", http.StatusOK, `{"not":"an array"}`, domain.ErrorKindMalformed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			src := NewHTTPSource(domain.SourceProfile, srv.URL)
			_, err := src.Fetch(context.Background(), "client-1")
			require.Error(t, err)

			var srcErr *Error
			require.ErrorAs(t, err, &srcErr)
			assert.Equal(t, tc.kind, srcErr.Kind)
		})
	}
}

func TestHTTPSource_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	src := NewHTTPSource(domain.SourceProfile, srv.URL)
	records, err := src.Fetch(context.Background(), "client-1")
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, int32(2), calls.Load())
}

func TestHTTPSource_ContextDeadlineMapsToTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	src := NewHTTPSource(domain.SourceProfile, srv.URL)
	_, err := src.Fetch(ctx, "client-1")
	require.Error(t, err)

	var srcErr *Error
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, domain.ErrorKindTimeout, srcErr.Kind)
}

func TestHTTPSource_EscapesClientID(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	src := NewHTTPSource(domain.SourceEstate, srv.URL)
	_, err := src.Fetch(context.Background(), "client/one")
	require.NoError(t, err)
	assert.Equal(t, "/clients/client%2Fone/estate", gotPath)
}
