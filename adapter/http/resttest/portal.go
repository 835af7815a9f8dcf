// Package resttest provides a fake SRUN portal for tests
package resttest

import (
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/forest33/srun/business/entity"
)

// MockPortal emulates the portal cgi endpoints
type MockPortal struct {
	router    *gin.Engine
	server    *httptest.Server
	responses map[string]string
	requests  []*PortalRequest
	sync.Mutex
}

// PortalRequest request received by MockPortal
type PortalRequest struct {
	Path        string
	ContentType string
	UserAgent   string
	Form        url.Values
}

func NewMockPortal() *MockPortal {
	gin.SetMode(gin.TestMode)

	m := &MockPortal{
		router:    gin.New(),
		responses: make(map[string]string, 3),
	}

	for _, path := range []string{entity.LoginPath, entity.LogoutPath, entity.ForceLogoutPath} {
		m.router.POST(path, m.handler)
	}

	m.server = httptest.NewServer(m.router)

	return m
}

// SetResponse sets the body returned for path
func (m *MockPortal) SetResponse(path, body string) {
	m.Lock()
	defer m.Unlock()
	m.responses[path] = body
}

// Server returns the portal endpoint
func (m *MockPortal) Server() entity.Server {
	host, port, _ := net.SplitHostPort(m.server.Listener.Addr().String())
	return entity.Server{
		Address: host,
		Port:    port,
	}
}

// Requests returns the requests received so far
func (m *MockPortal) Requests() []*PortalRequest {
	m.Lock()
	defer m.Unlock()
	return append([]*PortalRequest(nil), m.requests...)
}

func (m *MockPortal) Close() {
	m.server.Close()
}

func (m *MockPortal) handler(ctx *gin.Context) {
	if err := ctx.Request.ParseForm(); err != nil {
		ctx.String(http.StatusBadRequest, "%v", err)
		return
	}

	m.Lock()
	m.requests = append(m.requests, &PortalRequest{
		Path:        ctx.FullPath(),
		ContentType: ctx.ContentType(),
		UserAgent:   ctx.Request.UserAgent(),
		Form:        ctx.Request.PostForm,
	})
	body := m.responses[ctx.FullPath()]
	m.Unlock()

	ctx.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}
