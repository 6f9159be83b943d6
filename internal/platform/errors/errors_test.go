package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeConflict, http.StatusConflict},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUnauthorized, http.StatusUnauthorized},
		{ErrorCodeForbidden, http.StatusForbidden},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeTimeout, http.StatusGatewayTimeout},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestErrorCode_String(t *testing.T) {
	t.Parallel()

	if ErrorCodeNotFound.String() != "not_found" {
		t.Fatalf("got %q", ErrorCodeNotFound.String())
	}
	if ErrorCode(999).String() != "code(999)" {
		t.Fatalf("got %q", ErrorCode(999).String())
	}
}

func TestError_WrapAndInspect(t *testing.T) {
	t.Parallel()

	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatalf("nil render = %q", nilErr.Error())
	}

	src := stderrs.New("root")
	e := Wrapf(src, ErrorCodeForbidden, "org %s", "acme")
	if e.Error() != "org acme: root" {
		t.Fatalf("Error() = %q", e.Error())
	}
	if !stderrs.Is(e, src) {
		t.Fatal("cause lost")
	}
	if got, ok := As(e); !ok || got.Code() != ErrorCodeForbidden {
		t.Fatal("As failed")
	}
	if _, ok := As(src); ok {
		t.Fatal("As true for foreign error")
	}

	deep := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", src))
	if Root(deep) != src {
		t.Fatalf("Root = %v", Root(deep))
	}
}

func TestWithFieldAndOp_CopyOnWrite(t *testing.T) {
	t.Parallel()

	base := InvalidArgf("bad period")
	withField := WithField(base, "statsPeriod")
	withOp := WithOp(withField, "datetime")

	if fe, _ := As(withField); fe.Field() != "statsPeriod" {
		t.Fatal("WithField failed")
	}
	if oe, _ := As(withOp); oe.Op() != "datetime" || oe.Field() != "statsPeriod" {
		t.Fatal("WithOp failed")
	}
	if b, _ := As(base); b.Field() != "" || b.Op() != "" {
		t.Fatal("original mutated")
	}

	foreign := WithField(stderrs.New("x"), "name")
	if fe, ok := As(foreign); !ok || fe.Code() != ErrorCodeUnknown || fe.Field() != "name" {
		t.Fatalf("foreign WithField = %+v", fe)
	}
	if WithField(nil, "x") != nil {
		t.Fatal("WithField(nil) must stay nil")
	}
	if plain := stderrs.New("y"); WithOp(plain, "op") != plain {
		t.Fatal("WithOp must not wrap foreign errors")
	}
}

func TestWireFrom(t *testing.T) {
	t.Parallel()

	if WireFrom(nil) != (Wire{}) {
		t.Fatal("nil should produce zero wire")
	}
	if w := WireFrom(stderrs.New("boom")); w.Code != ErrorCodeUnknown || w.Message != "boom" {
		t.Fatalf("foreign wire = %+v", w)
	}
	w := WireFrom(WithField(Wrap(stderrs.New("secret"), ErrorCodeValidation, "bad input"), "delta"))
	if w.Code != ErrorCodeValidation || w.Message != "bad input" || w.Field != "delta" {
		t.Fatalf("wire = %+v", w)
	}

	st, wire := HTTP(NotFoundf("organization %q not found", "acme"))
	if st != http.StatusNotFound || wire.Message != `organization "acme" not found` {
		t.Fatalf("HTTP = %d %+v", st, wire)
	}
	if st, _ := HTTP(nil); st != http.StatusOK {
		t.Fatalf("HTTP(nil) = %d", st)
	}
}

func TestSugar(t *testing.T) {
	t.Parallel()

	cases := map[ErrorCode]error{
		ErrorCodeNotFound:        NotFoundf("x"),
		ErrorCodeInvalidArgument: InvalidArgf("x"),
		ErrorCodeValidation:      Validationf("x"),
		ErrorCodeJSON:            JSONErrf("x"),
		ErrorCodePanic:           PanicErrf("x"),
		ErrorCodeUnauthorized:    Unauthorizedf("x"),
		ErrorCodeForbidden:       Forbiddenf("x"),
		ErrorCodeUnavailable:     Unavailablef("x"),
		ErrorCodeTimeout:         Timeoutf("x"),
	}
	for code, err := range cases {
		if !IsCode(err, code) {
			t.Fatalf("want %v, got %v", code, CodeOf(err))
		}
	}
	if !IsCode(ErrNotFound, ErrorCodeNotFound) {
		t.Fatal("ErrNotFound code")
	}
}
