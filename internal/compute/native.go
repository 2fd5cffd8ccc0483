// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compute

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/skyquery/internal/errors"
	"github.com/pdiddy/skyquery/internal/httputil"
	"github.com/pdiddy/skyquery/pkg/types"
)

// nativeBodies are the bodies the native service models. The outer planets
// are served by the fallback.
var nativeBodies = map[types.Body]bool{
	types.BodySun:     true,
	types.BodyMoon:    true,
	types.BodyMercury: true,
	types.BodyVenus:   true,
	types.BodyMars:    true,
	types.BodyCustom:  true,
}

const maxErrorBody = 512

// NativeConfig locates the native computation service.
type NativeConfig struct {
	Endpoint   string
	Token      string
	Timeout    time.Duration
	MaxRetries int
	UserAgent  string
}

// Native calls a high-precision computation service over HTTP. Each
// operation is a JSON POST to <endpoint>/v1/<op> whose body is the request
// and whose reply is the response type.
type Native struct {
	cfg    NativeConfig
	client *http.Client
}

// NewNative returns a client for the service at cfg.Endpoint.
func NewNative(cfg NativeConfig) *Native {
	cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &Native{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}
}

// Available reports whether an endpoint is configured. It is the facade's
// availability predicate.
func (n *Native) Available() bool {
	return n != nil && n.cfg.Endpoint != ""
}

// Kind implements Backend.
func (n *Native) Kind() types.BackendKind { return types.BackendNative }

// Coordinates implements Backend.
func (n *Native) Coordinates(ctx context.Context, req types.CoordinatesRequest) (types.CoordinatesResponse, error) {
	var resp types.CoordinatesResponse
	err := n.post(ctx, OpCoordinates, req, &resp)
	resp.Meta = n.stamp(resp.Meta)
	return resp, err
}

// Ephemeris implements Backend.
func (n *Native) Ephemeris(ctx context.Context, req types.EphemerisRequest) (types.EphemerisResponse, error) {
	if !nativeBodies[req.Body] {
		return types.EphemerisResponse{}, &UnsupportedBodyError{Body: req.Body, Backend: types.BackendNative}
	}
	var resp types.EphemerisResponse
	err := n.post(ctx, OpEphemeris, req, &resp)
	resp.Meta = n.stamp(resp.Meta)
	return resp, err
}

// RiseTransitSet implements Backend.
func (n *Native) RiseTransitSet(ctx context.Context, req types.RiseTransitSetRequest) (types.RiseTransitSetResponse, error) {
	var resp types.RiseTransitSetResponse
	err := n.post(ctx, OpRiseTransitSet, req, &resp)
	resp.Meta = n.stamp(resp.Meta)
	return resp, err
}

// Phenomena implements Backend.
func (n *Native) Phenomena(ctx context.Context, req types.PhenomenaRequest) (types.PhenomenaResponse, error) {
	bodies := req.Bodies
	if len(bodies) == 0 {
		bodies = types.Planets
	}
	for _, b := range bodies {
		if !nativeBodies[b] {
			return types.PhenomenaResponse{}, &UnsupportedBodyError{Body: b, Backend: types.BackendNative}
		}
	}
	var resp types.PhenomenaResponse
	err := n.post(ctx, OpPhenomena, req, &resp)
	resp.Meta = n.stamp(resp.Meta)
	return resp, err
}

// Almanac implements Backend.
func (n *Native) Almanac(ctx context.Context, req types.AlmanacRequest) (types.AlmanacResponse, error) {
	var resp types.AlmanacResponse
	err := n.post(ctx, OpAlmanac, req, &resp)
	resp.Meta = n.stamp(resp.Meta)
	return resp, err
}

func (n *Native) stamp(m types.Meta) types.Meta {
	m.Backend = types.BackendNative
	if m.ComputedAt.IsZero() {
		m.ComputedAt = time.Now().UTC()
	}
	return m
}

func (n *Native) post(ctx context.Context, op string, in, out any) error {
	if !n.Available() {
		return ErrBackendUnavailable
	}
	body, err := json.Marshal(in)
	if err != nil {
		return errors.Wrapf(err, "encoding %s request", op)
	}

	url := n.cfg.Endpoint + "/v1/" + strings.ReplaceAll(op, "_", "-")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrapf(err, "creating %s request", op)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if n.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", n.cfg.UserAgent)
	}
	if n.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+n.cfg.Token)
	}

	resp, err := httputil.DoWithRetry(ctx, n.client, req, n.cfg.MaxRetries)
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "native %s", op), ErrBackendUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return errors.Newf("native %s: HTTP %d: %s", op, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decoding native %s response", op)
	}
	return nil
}
