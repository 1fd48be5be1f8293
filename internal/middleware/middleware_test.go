package middleware

import (
	"context"
	"errors"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/splitstuff/splitstuff/internal/auth"
)

type stubValidator map[string]auth.Session

func (v stubValidator) Validate(token string) (auth.Session, error) {
	if s, ok := v[token]; ok {
		return s, nil
	}
	return auth.Session{}, auth.ErrInvalidToken
}

type ping struct{}

func TestRequireAuth(t *testing.T) {
	validator := stubValidator{"good": {ProfileID: "p1", Email: "asha@example.com"}}
	interceptor := RequireAuth(validator)

	var seen auth.Session
	next := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		seen, _ = SessionFrom(ctx)
		return connect.NewResponse(&ping{}), nil
	}
	handler := interceptor(next)

	tests := []struct {
		name     string
		header   string
		wantCode connect.Code
	}{
		{name: "valid token", header: "Bearer good"},
		{name: "missing header", header: "", wantCode: connect.CodeUnauthenticated},
		{name: "wrong scheme", header: "Basic good", wantCode: connect.CodeUnauthenticated},
		{name: "empty token", header: "Bearer ", wantCode: connect.CodeUnauthenticated},
		{name: "unknown token", header: "Bearer bad", wantCode: connect.CodeUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = auth.Session{}
			req := connect.NewRequest(&ping{})
			if tt.header != "" {
				req.Header().Set("Authorization", tt.header)
			}

			_, err := handler(context.Background(), req)
			if tt.wantCode == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if seen.ProfileID != "p1" {
					t.Errorf("expected session for p1, got %+v", seen)
				}
				return
			}
			if connect.CodeOf(err) != tt.wantCode {
				t.Errorf("expected code %v, got %v (%v)", tt.wantCode, connect.CodeOf(err), err)
			}
			if seen.ProfileID != "" {
				t.Errorf("next should not run, saw session %+v", seen)
			}
		})
	}
}

func TestSessionFrom(t *testing.T) {
	if _, ok := SessionFrom(context.Background()); ok {
		t.Error("expected no session in empty context")
	}
	if GetProfileID(context.Background()) != "" {
		t.Error("expected empty profile ID")
	}

	ctx := WithSession(context.Background(), auth.Session{ProfileID: "p2"})
	if got := GetProfileID(ctx); got != "p2" {
		t.Errorf("expected p2, got %q", got)
	}

	ctx = WithSession(context.Background(), auth.Session{})
	if _, ok := SessionFrom(ctx); ok {
		t.Error("session without profile ID should not count")
	}
}

func TestMetricsInterceptor(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	ok := m.Interceptor()(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return connect.NewResponse(&ping{}), nil
	})
	fail := m.Interceptor()(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, connect.NewError(connect.CodeNotFound, errors.New("missing"))
	})

	for i := 0; i < 2; i++ {
		if _, err := ok(context.Background(), connect.NewRequest(&ping{})); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if _, err := fail(context.Background(), connect.NewRequest(&ping{})); err == nil {
		t.Fatal("expected error")
	}

	if got := testutil.ToFloat64(m.requests.WithLabelValues("", "ok")); got != 2 {
		t.Errorf("expected 2 ok calls, got %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("", "not_found")); got != 1 {
		t.Errorf("expected 1 not_found call, got %v", got)
	}

	expected := `
# HELP splitstuff_rpc_requests_total RPC calls by procedure and result code.
# TYPE splitstuff_rpc_requests_total counter
splitstuff_rpc_requests_total{code="not_found",procedure=""} 1
splitstuff_rpc_requests_total{code="ok",procedure=""} 2
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "splitstuff_rpc_requests_total"); err != nil {
		t.Error(err)
	}
}

func TestCodeOf(t *testing.T) {
	if got := codeOf(nil); got != "ok" {
		t.Errorf("expected ok, got %s", got)
	}
	if got := codeOf(errors.New("boom")); got != "unknown" {
		t.Errorf("expected unknown, got %s", got)
	}
	if got := codeOf(connect.NewError(connect.CodePermissionDenied, errors.New("no"))); got != "permission_denied" {
		t.Errorf("expected permission_denied, got %s", got)
	}
}
