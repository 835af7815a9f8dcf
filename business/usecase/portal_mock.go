package usecase

import (
	"context"
	"net/url"

	"github.com/forest33/srun/business/entity"
)

// MockEnumerator serves a fixed interface list
type MockEnumerator struct {
	Addrs map[string][]string
	Calls int
}

func (m *MockEnumerator) Enumerate() map[string][]string {
	m.Calls++
	if m.Addrs == nil {
		return map[string][]string{}
	}
	return m.Addrs
}

// MockTransport answers every request with Body or Err
type MockTransport struct {
	Body  string
	Err   error
	Calls int
	URL   string
	Form  url.Values
}

func (m *MockTransport) PostForm(_ context.Context, url string, form url.Values) (string, error) {
	m.Calls++
	m.URL = url
	m.Form = form
	if m.Err != nil {
		return "", m.Err
	}
	return m.Body, nil
}

var (
	_ entity.InterfaceEnumerator = (*MockEnumerator)(nil)
	_ entity.PortalTransport     = (*MockTransport)(nil)
)
