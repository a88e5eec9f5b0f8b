package control

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"hnsync/app"
)

type Client struct {
	base string
	http *http.Client
}

func NewClient(addr string) *Client {
	base := addr
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	return &Client{base: base, http: &http.Client{Timeout: 5 * time.Second}}
}

// SetInterval returns the interval that was in effect before the change.
func (c *Client) SetInterval(d time.Duration) (time.Duration, error) {
	var r struct {
		Old string `json:"old"`
		New string `json:"new"`
	}
	if err := c.post("/set-interval", map[string]interface{}{"duration": d.String()}, &r); err != nil {
		return 0, err
	}
	if r.Old == "" {
		return 0, nil
	}
	old, err := time.ParseDuration(r.Old)
	if err != nil {
		return 0, fmt.Errorf("bad response: %w", err)
	}
	return old, nil
}

// SetWorkers returns the worker count that was in effect before the change.
func (c *Client) SetWorkers(n int) (int, error) {
	var r struct {
		Old int `json:"old"`
		New int `json:"new"`
	}
	if err := c.post("/set-workers", map[string]interface{}{"workers": n}, &r); err != nil {
		return 0, err
	}
	return r.Old, nil
}

func (c *Client) Status() (app.Status, error) {
	var st app.Status
	resp, err := c.http.Get(c.base + "/status")
	if err != nil {
		return st, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return st, fmt.Errorf("server error: %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return st, fmt.Errorf("bad response: %w", err)
	}
	return st, nil
}

func (c *Client) post(path string, body, out interface{}) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := c.http.Post(c.base+path, "application/json", bytes.NewReader(b))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var msg bytes.Buffer
		_, _ = msg.ReadFrom(resp.Body)
		return fmt.Errorf("server error: %s: %s", resp.Status, strings.TrimSpace(msg.String()))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("bad response: %w", err)
	}
	return nil
}
