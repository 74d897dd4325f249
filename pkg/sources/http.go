package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/advisordesk/report-engine/pkg/models/domain"
	"github.com/hashicorp/go-retryablehttp"
)

const defaultRetryMax = 2

// HTTPSource reads one source's records from an internal store service:
// GET {baseURL}/clients/{clientID}/{sourceID} returning a JSON array of
// records. Fetches are idempotent reads, so transient failures are retried.
type HTTPSource struct {
	id      domain.SourceID
	baseURL string
	client  *http.Client
}

func NewHTTPSource(id domain.SourceID, baseURL string) *HTTPSource {
	rc := retryablehttp.NewClient()
	rc.RetryMax = defaultRetryMax
	rc.RetryWaitMin = 100 * time.Millisecond
	rc.RetryWaitMax = 1 * time.Second
	rc.Logger = nil

	return &HTTPSource{
		id:      id,
		baseURL: baseURL,
		client:  rc.StandardClient(),
	}
}

func (s *HTTPSource) ID() domain.SourceID {
	return s.id
}

func (s *HTTPSource) Fetch(ctx context.Context, clientID string) ([]domain.RawRecord, error) {
	endpoint := fmt.Sprintf("%s/clients/%s/%s", s.baseURL, url.PathEscape(clientID), s.id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &Error{Kind: domain.ErrorKindUnknown, Detail: err.Error()}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, &Error{Kind: domain.ErrorKindTimeout, Detail: err.Error()}
		}
		return nil, &Error{Kind: domain.ErrorKindUnknown, Detail: err.Error()}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, &Error{Kind: domain.ErrorKindNotFound, Detail: fmt.Sprintf("client %s not known to %s", clientID, s.id)}
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &Error{Kind: domain.ErrorKindUnauthorized, Detail: fmt.Sprintf("%s returned %d", s.id, resp.StatusCode)}
	default:
		return nil, &Error{Kind: domain.ErrorKindUnknown, Detail: fmt.Sprintf("%s returned %d", s.id, resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: domain.ErrorKindUnknown, Detail: err.Error()}
	}

	var records []domain.RawRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, &Error{Kind: domain.ErrorKindMalformed, Detail: fmt.Sprintf("%s payload: %v", s.id, err)}
	}
	if records == nil {
		records = []domain.RawRecord{}
	}

	return records, nil
}
