package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

type scriptedClient struct {
	errs  []error
	calls int
}

func (s *scriptedClient) Complete(ctx context.Context, input CompleteInput) (string, error) {
	idx := s.calls
	s.calls++
	if idx < len(s.errs) && s.errs[idx] != nil {
		return "", s.errs[idx]
	}
	return "ok", nil
}

func TestRetryOnceOnTransientError(t *testing.T) {
	base := &scriptedClient{errs: []error{errors.New("openai: http status 502")}}
	client := retrying{base: base, delay: time.Millisecond}

	out, err := client.Complete(context.Background(), CompleteInput{User: "hi"})
	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if out != "ok" || base.calls != 2 {
		t.Fatalf("expected 2 calls and ok, got %d calls and %q", base.calls, out)
	}
}

func TestNoRetryOnPermanentError(t *testing.T) {
	base := &scriptedClient{errs: []error{errors.New("invalid api key")}}
	client := retrying{base: base, delay: time.Millisecond}

	if _, err := client.Complete(context.Background(), CompleteInput{}); err == nil {
		t.Fatalf("expected error")
	}
	if base.calls != 1 {
		t.Fatalf("expected a single call, got %d", base.calls)
	}
}

func TestRetryOnlyOnce(t *testing.T) {
	transient := errors.New("connection reset by peer")
	base := &scriptedClient{errs: []error{transient, transient, nil}}
	client := retrying{base: base, delay: time.Millisecond}

	if _, err := client.Complete(context.Background(), CompleteInput{}); !errors.Is(err, transient) {
		t.Fatalf("expected second transient error, got %v", err)
	}
	if base.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", base.calls)
	}
}

func TestShouldRetry(t *testing.T) {
	cases := map[string]struct {
		err  error
		want bool
	}{
		"nil":       {nil, false},
		"deadline":  {context.DeadlineExceeded, true},
		"canceled":  {context.Canceled, false},
		"eof":       {errors.New("unexpected EOF"), true},
		"bad input": {errors.New("model not found"), false},
	}
	for name, tc := range cases {
		if got := ShouldRetry(tc.err); got != tc.want {
			t.Fatalf("%s: ShouldRetry = %v, want %v", name, got, tc.want)
		}
	}
}

func TestPlaceholderClient(t *testing.T) {
	if _, err := (PlaceholderClient{}).Complete(context.Background(), CompleteInput{}); !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("expected ErrNotImplemented, got %v", err)
	}
}
