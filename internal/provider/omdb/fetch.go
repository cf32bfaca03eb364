package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/plexstream/plexstream/internal/provider"
)

// get performs one OMDb API call and decodes the body into out. Transport
// failures, timeouts, and 5xx responses come back as KindUnreachable;
// in-band Response "False" errors are handled by the callers because their
// meaning differs between search and lookup.
func (a *Adapter) get(ctx context.Context, params url.Values, out any) error {
	params.Set("apikey", a.apiKey)

	reqURL := a.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return provider.NewError(providerName, provider.KindInvalidQuery, "building request", err)
	}

	a.logger.WithFields(logrus.Fields{
		"provider": providerName,
		"query":    redact(params),
	}).Debug("omdb request")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return provider.NewError(providerName, provider.KindUnreachable, "request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return provider.NewError(providerName, provider.KindInvalidQuery, "authentication rejected", nil)
	case resp.StatusCode != http.StatusOK:
		return provider.NewError(providerName, provider.KindUnreachable,
			fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return provider.NewError(providerName, provider.KindUnreachable, "reading response body", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return provider.NewError(providerName, provider.KindNormalization, "decoding response body", err)
	}
	return nil
}

// mapBusinessError classifies an in-band Response "False" message.
func mapBusinessError(msg string) *provider.Error {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "invalid api key"):
		return provider.NewError(providerName, provider.KindInvalidQuery, "authentication failed: "+msg, nil)
	case strings.Contains(lower, "not found"), strings.Contains(lower, "incorrect imdb id"):
		return provider.NewError(providerName, provider.KindNotFound, msg, nil)
	default:
		return provider.NewError(providerName, provider.KindInvalidQuery, msg, nil)
	}
}

func redact(params url.Values) string {
	clone := url.Values{}
	for k, vs := range params {
		if k == "apikey" {
			clone.Set(k, "***")
			continue
		}
		for _, v := range vs {
			clone.Add(k, v)
		}
	}
	return clone.Encode()
}
