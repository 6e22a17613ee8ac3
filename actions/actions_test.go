package actions_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/tebeka/selenium"

	"github.com/sentact/uitest/actions"
	"github.com/sentact/uitest/internal/fakedriver"
)

type request struct {
	method, path string
	body         map[string]interface{}
}

// newServer returns a WebDriver endpoint that records requests and answers
// with status and reply.
func newServer(t *testing.T, status int, reply string) (*httptest.Server, *[]request) {
	t.Helper()
	var reqs []request
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := request{method: r.Method, path: r.URL.Path}
		data, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("reading request body: %v", err)
		}
		if len(data) > 0 {
			if err := json.Unmarshal(data, &req.body); err != nil {
				t.Errorf("request body %q is not JSON: %v", data, err)
			}
		}
		reqs = append(reqs, req)
		w.WriteHeader(status)
		io.WriteString(w, reply)
	}))
	t.Cleanup(s.Close)
	return s, &reqs
}

func TestMoveToElementAndClick(t *testing.T) {
	s, reqs := newServer(t, http.StatusOK, `{"value":null}`)
	p := actions.NewHTTPPerformer(s.URL+"/wd/hub/", "abc123")
	el := &fakedriver.Element{ID: "arrow-1"}

	chain := actions.NewChain(p).MoveToElement(el).Click()
	id := chain.Sequences()[0].ID
	if err := chain.Perform(); err != nil {
		t.Fatalf("Perform() returned error: %v", err)
	}

	if len(*reqs) != 2 {
		t.Fatalf("server received %d requests, want 2", len(*reqs))
	}
	perform, release := (*reqs)[0], (*reqs)[1]
	if perform.method != http.MethodPost || perform.path != "/wd/hub/session/abc123/actions" {
		t.Errorf("first request = %s %s, want POST /wd/hub/session/abc123/actions", perform.method, perform.path)
	}
	if release.method != http.MethodDelete || release.path != "/wd/hub/session/abc123/actions" {
		t.Errorf("second request = %s %s, want DELETE /wd/hub/session/abc123/actions", release.method, release.path)
	}

	want := map[string]interface{}{
		"actions": []interface{}{
			map[string]interface{}{
				"type":       "pointer",
				"id":         id,
				"parameters": map[string]interface{}{"pointerType": "mouse"},
				"actions": []interface{}{
					map[string]interface{}{
						"type":     "pointerMove",
						"duration": float64(250),
						"x":        float64(0),
						"y":        float64(0),
						"origin": map[string]interface{}{
							"ELEMENT":                             "arrow-1",
							"element-6066-11e4-a52e-4f735466cecf": "arrow-1",
						},
					},
					map[string]interface{}{"type": "pointerDown", "button": float64(0)},
					map[string]interface{}{"type": "pointerUp", "button": float64(0)},
				},
			},
		},
	}
	if diff := cmp.Diff(want, perform.body); diff != "" {
		t.Errorf("actions payload returned diff (-want/+got):\n%s", diff)
	}

	if got := chain.Sequences()[0].Actions; len(got) != 0 {
		t.Errorf("chain still holds %d actions after Perform", len(got))
	}
}

func TestChainActions(t *testing.T) {
	chain := actions.NewChain(&fakedriver.Performer{})
	chain.MoveDuration = 0
	chain.MoveByOffset(10, -5).Pause(500 * time.Millisecond).DoubleClick()

	seq := chain.Sequences()[0]
	var types []string
	for _, a := range seq.Actions {
		types = append(types, a["type"].(string))
	}
	want := []string{"pointerMove", "pause", "pointerDown", "pointerUp", "pointerDown", "pointerUp"}
	if diff := cmp.Diff(want, types); diff != "" {
		t.Errorf("action types returned diff (-want/+got):\n%s", diff)
	}
	if got := seq.Actions[0]["origin"]; got != actions.OriginPointer {
		t.Errorf("move origin = %v, want %q", got, actions.OriginPointer)
	}
	if got := seq.Actions[1]["duration"]; got != int64(500) {
		t.Errorf("pause duration = %v, want 500", got)
	}
}

func TestPerformEmptyChain(t *testing.T) {
	p := &fakedriver.Performer{}
	if err := actions.NewChain(p).Perform(); err != nil {
		t.Fatalf("Perform() returned error: %v", err)
	}
	if len(p.Performed) != 0 || p.Released != 0 {
		t.Errorf("empty chain sent %d performs and %d releases, want none", len(p.Performed), p.Released)
	}
}

func TestPerformReleasesOnError(t *testing.T) {
	p := &fakedriver.Performer{Err: errors.New("move target out of bounds")}
	err := actions.NewChain(p).MoveByOffset(1, 1).Perform()
	if err != p.Err {
		t.Errorf("Perform() = %v, want %v", err, p.Err)
	}
	if p.Released != 1 {
		t.Errorf("actions released %d times, want 1", p.Released)
	}
}

func TestHTTPPerformerError(t *testing.T) {
	tests := []struct {
		desc   string
		status int
		reply  string
		want   *selenium.Error
	}{
		{
			desc:   "W3C error",
			status: http.StatusNotFound,
			reply:  `{"value":{"error":"no such element","message":"stale element","stacktrace":""}}`,
			want:   &selenium.Error{Err: "no such element", Message: "stale element", HTTPCode: http.StatusNotFound},
		},
		{
			desc:   "not JSON",
			status: http.StatusInternalServerError,
			reply:  "internal failure\n",
			want:   &selenium.Error{Err: "unknown error", Message: "internal failure", HTTPCode: http.StatusInternalServerError},
		},
	}
	for _, test := range tests {
		s, _ := newServer(t, test.status, test.reply)
		p := actions.NewHTTPPerformer(s.URL, "abc123")
		err := p.PerformActions(nil)
		var got *selenium.Error
		if !errors.As(err, &got) {
			t.Errorf("%s: PerformActions() = %v, want a *selenium.Error", test.desc, err)
			continue
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("%s: PerformActions() returned diff (-want/+got):\n%s", test.desc, diff)
		}
	}
}

func TestNewPointerInput(t *testing.T) {
	for _, kind := range []string{actions.PointerMouse, actions.PointerPen, actions.PointerTouch} {
		p, err := actions.NewPointerInput(kind, "")
		if err != nil {
			t.Errorf("NewPointerInput(%q) returned error: %v", kind, err)
			continue
		}
		if p.Name() == "" {
			t.Errorf("NewPointerInput(%q) has no generated id", kind)
		}
		if got := p.Encode().Parameters.PointerType; got != kind {
			t.Errorf("NewPointerInput(%q).Encode() pointer type = %q", kind, got)
		}
	}
	if _, err := actions.NewPointerInput("stylus", "pen-1"); err == nil {
		t.Error("NewPointerInput(\"stylus\") did not return an error")
	}
}
