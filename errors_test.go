package uitest

import (
	"errors"
	"fmt"
	"testing"

	"github.com/tebeka/selenium"
)

func TestWrapDriver(t *testing.T) {
	tests := []struct {
		desc string
		err  error
		want Kind
	}{
		{
			desc: "W3C no such element",
			err:  &selenium.Error{Err: "no such element", HTTPCode: 404},
			want: NotFound,
		},
		{
			desc: "W3C invalid selector",
			err:  &selenium.Error{Err: "invalid selector", HTTPCode: 400},
			want: NotFound,
		},
		{
			desc: "legacy no such element message",
			err:  errors.New("unknown error: no such element: Unable to locate element"),
			want: NotFound,
		},
		{
			desc: "click intercepted",
			err:  &selenium.Error{Err: "element click intercepted", HTTPCode: 400},
			want: Driver,
		},
		{
			desc: "transport failure",
			err:  errors.New("connection refused"),
			want: Driver,
		},
	}

	for _, test := range tests {
		err := wrapDriver("find", "//div", test.err)
		if got := KindOf(err); got != test.want {
			t.Errorf("%s: KindOf(wrapDriver()) = %v, want %v", test.desc, got, test.want)
		}
		if !errors.Is(err, test.err) {
			t.Errorf("%s: wrapDriver() does not wrap the original error", test.desc)
		}
	}

	if err := wrapDriver("find", "//div", nil); err != nil {
		t.Errorf("wrapDriver(nil) = %v, want nil", err)
	}

	classified := Assertf("text mismatch")
	if got := Wrap("click", "//div", classified); got != classified {
		t.Errorf("Wrap(%v) = %v, want the error unchanged", classified, got)
	}
}

func TestErrorString(t *testing.T) {
	err := &Error{Kind: NotFound, Op: "find", Expr: `//*[@id="x"]`, Err: errors.New("no such element")}
	if got, want := err.Error(), `not found: find "//*[@id=\"x\"]": no such element`; got != want {
		t.Errorf("err.Error() = %q, want %q", got, want)
	}

	if got, want := Assertf("got %q", "a").Error(), `assertion: got "a"`; got != want {
		t.Errorf("Assertf().Error() = %q, want %q", got, want)
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("scenario CarouselTurn: %w", &Error{Kind: Timeout, Op: "wait visible"})
	if !IsTimeout(err) {
		t.Errorf("IsTimeout(%v) = false, want true", err)
	}
	if IsNotFound(err) || IsAssertion(err) || IsSetup(err) {
		t.Errorf("%v is reported as more than one kind", err)
	}
	if IsTimeout(nil) {
		t.Error("IsTimeout(nil) = true, want false")
	}
	if got := KindOf(errors.New("plain")); got != Driver {
		t.Errorf("KindOf(plain error) = %v, want %v", got, Driver)
	}
}
