package upstream

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/carbon-intensity-proxy/internal/carbon"
)

// maxErrorBody caps how much of a non-2xx body is quoted in the error.
const maxErrorBody = 512

func newBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "carbonintensity",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
		// A 4xx means the caller sent something upstream refused, not that upstream is down.
		IsSuccessful: func(err error) bool {
			var upErr *carbon.UpstreamError
			return err == nil || (errors.As(err, &upErr) && upErr.ClientFault())
		},
	})
}

// do executes req once, through the breaker when one is configured.
// A non-2xx response is closed and reported as a status error.
func do(client *http.Client, cb *gobreaker.CircuitBreaker, req *http.Request) (*http.Response, error) {
	call := func() (interface{}, error) {
		resp, err := client.Do(req)
		if err != nil {
			return nil, &carbon.UpstreamError{Kind: carbon.KindTransport, Err: err}
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			defer resp.Body.Close()
			body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
			return nil, &carbon.UpstreamError{
				Kind:   carbon.KindStatus,
				Status: resp.StatusCode,
				Err:    fmt.Errorf("status %d: %s", resp.StatusCode, body),
			}
		}
		return resp, nil
	}

	if cb == nil {
		result, err := call()
		if err != nil {
			return nil, err
		}
		return result.(*http.Response), nil
	}

	result, err := cb.Execute(call)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &carbon.UpstreamError{Kind: carbon.KindBreaker, Err: err}
		}
		return nil, err
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, &carbon.UpstreamError{
			Kind: carbon.KindTransport,
			Err:  fmt.Errorf("unexpected result type from circuit breaker"),
		}
	}
	return resp, nil
}
