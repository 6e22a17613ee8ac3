package actions

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tebeka/selenium"
)

// HTTPPerformer sends actions to a WebDriver server.
type HTTPPerformer struct {
	// Addr is the executor URL the session was created against, e.g.
	// "http://127.0.0.1:9515/wd/hub".
	Addr      string
	SessionID string
	Client    *http.Client
}

// NewHTTPPerformer returns a performer for the given session.
func NewHTTPPerformer(addr, sessionID string) *HTTPPerformer {
	return &HTTPPerformer{Addr: strings.TrimSuffix(addr, "/"), SessionID: sessionID, Client: http.DefaultClient}
}

func (p *HTTPPerformer) url() string {
	return fmt.Sprintf("%s/session/%s/actions", p.Addr, p.SessionID)
}

// PerformActions implements Performer.
func (p *HTTPPerformer) PerformActions(seqs []Sequence) error {
	data, err := json.Marshal(map[string]interface{}{"actions": seqs})
	if err != nil {
		return fmt.Errorf("encoding actions: %w", err)
	}
	return p.execute(http.MethodPost, data)
}

// ReleaseActions implements Performer.
func (p *HTTPPerformer) ReleaseActions() error {
	return p.execute(http.MethodDelete, nil)
}

type reply struct {
	Value json.RawMessage `json:"value"`
}

func (p *HTTPPerformer) execute(method string, data []byte) error {
	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, p.url(), body)
	if err != nil {
		return err
	}
	req.Header.Add("Accept", "application/json")
	if data != nil {
		req.Header.Add("Content-Type", "application/json;charset=utf-8")
	}

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusOK {
		return nil
	}

	e := &selenium.Error{HTTPCode: resp.StatusCode}
	var r reply
	if err := json.Unmarshal(buf, &r); err == nil && len(r.Value) > 0 {
		if err := json.Unmarshal(r.Value, e); err == nil && e.Err != "" {
			return e
		}
	}
	e.Err = "unknown error"
	e.Message = strings.TrimSpace(string(buf))
	return e
}
