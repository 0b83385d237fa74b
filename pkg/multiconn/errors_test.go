package multiconn

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestBuildError_WrapsCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := &BuildError{Backend: Postgres, Name: "main_pg", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("BuildError must unwrap to its cause")
	}
	msg := err.Error()
	for _, want := range []string{"postgres", "main_pg", "connection refused"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}

func TestUnknownConnectionError_MatchesSentinel(t *testing.T) {
	var err error = &UnknownConnectionError{Backend: MySQL, Name: "absent"}

	if !errors.Is(err, ErrUnknownConnection) {
		t.Error("expected match with ErrUnknownConnection")
	}
	if errors.Is(err, ErrWrongBackend) {
		t.Error("unexpected match with ErrWrongBackend")
	}
	if got := err.Error(); !strings.Contains(got, `no mysql connection named "absent"`) {
		t.Errorf("unexpected message %q", got)
	}
}

func TestWrongBackendError_MatchesSentinel(t *testing.T) {
	var err error = &WrongBackendError{Backend: MySQL, Registered: Postgres, Name: "main_pg"}

	if !errors.Is(err, ErrWrongBackend) {
		t.Error("expected match with ErrWrongBackend")
	}
	if got := err.Error(); !strings.Contains(got, "registered as postgres, not mysql") {
		t.Errorf("unexpected message %q", got)
	}
}

func TestCheckoutError_WrapsCause(t *testing.T) {
	cause := errors.New("pool exhausted")
	err := fmt.Errorf("request failed: %w",
		&CheckoutError{Backend: SQLite, Name: "cache", Err: cause})

	if !errors.Is(err, cause) {
		t.Error("CheckoutError must unwrap to its cause")
	}
	var checkoutErr *CheckoutError
	if !errors.As(err, &checkoutErr) {
		t.Fatal("expected *CheckoutError in chain")
	}
	if checkoutErr.Name != "cache" || checkoutErr.Backend != SQLite {
		t.Errorf("unexpected context: %+v", checkoutErr)
	}
}

func TestBackendString(t *testing.T) {
	cases := map[Backend]string{
		Postgres: "postgres",
		MySQL:    "mysql",
		SQLite:   "sqlite",
		MSSQL:    "mssql",
	}
	for b, want := range cases {
		if got := b.String(); got != want {
			t.Errorf("Backend(%d).String() = %q, want %q", int(b), got, want)
		}
	}
	if got := Backend(42).String(); got != "Backend(42)" {
		t.Errorf("out-of-range String() = %q", got)
	}
}
