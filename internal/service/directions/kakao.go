package directions

import (
	"SchoolPick/entity"
	"SchoolPick/internal/lib/sl"
	"context"
	"fmt"
	"github.com/go-resty/resty/v2"
	"log/slog"
	"time"
)

const directionsPath = "/v1/directions"

// Summary is the part of a route the gateway keeps.
type Summary struct {
	Distance int // meters
	Duration int // seconds
}

type kakaoResponse struct {
	TransID string `json:"trans_id"`
	Routes  []struct {
		ResultCode int    `json:"result_code"`
		ResultMsg  string `json:"result_msg"`
		Summary    *struct {
			Distance int `json:"distance"`
			Duration int `json:"duration"`
		} `json:"summary"`
	} `json:"routes"`
}

type kakaoError struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// KakaoClient calls the Kakao Mobility car directions API.
type KakaoClient struct {
	http   *resty.Client
	apiKey string
	log    *slog.Logger
}

func NewKakaoClient(baseURL, apiKey string, timeout time.Duration, retries int, logger *slog.Logger) *KakaoClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(retries).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("Accept", "application/json")

	return &KakaoClient{
		http:   client,
		apiKey: apiKey,
		log:    logger.With(sl.Module("kakao directions")),
	}
}

// Directions requests the recommended car route with default car type and
// fuel and returns the summary of the first route.
func (c *KakaoClient) Directions(ctx context.Context, origin, destination entity.Location) (Summary, error) {
	if c.apiKey == "" {
		return Summary{}, ErrNoCredential
	}

	var result kakaoResponse
	var apiErr kakaoError
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "KakaoAK "+c.apiKey).
		SetQueryParams(map[string]string{
			"origin":      origin.LngLat(),
			"destination": destination.LngLat(),
			"priority":    "RECOMMEND",
			"car_type":    "1",
			"car_fuel":    "GASOLINE",
		}).
		SetResult(&result).
		SetError(&apiErr).
		Get(directionsPath)
	if err != nil {
		return Summary{}, fmt.Errorf("directions request: %w", err)
	}

	if resp.IsError() {
		c.log.With(
			slog.Int("status", resp.StatusCode()),
			slog.Int("code", apiErr.Code),
			slog.String("msg", apiErr.Msg),
		).Debug("directions rejected")
		return Summary{}, fmt.Errorf("%w: status %d: %s", ErrProvider, resp.StatusCode(), apiErr.Msg)
	}

	if len(result.Routes) == 0 {
		return Summary{}, fmt.Errorf("%w: no routes", ErrMalformed)
	}
	route := result.Routes[0]
	if route.ResultCode != 0 {
		return Summary{}, fmt.Errorf("%w: result %d: %s", ErrProvider, route.ResultCode, route.ResultMsg)
	}
	if route.Summary == nil {
		return Summary{}, fmt.Errorf("%w: route without summary", ErrMalformed)
	}

	return Summary{
		Distance: route.Summary.Distance,
		Duration: route.Summary.Duration,
	}, nil
}
