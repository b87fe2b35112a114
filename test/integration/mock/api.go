//go:build integration

// Package mock provides stand-ins for the services the API talks to during integration tests.
package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// RecordedRequest is one call received by ApiMock.
type RecordedRequest struct {
	Headers map[string]string
	Query   map[string]string
	Body    map[string]any
}

type scriptedResponse struct {
	status int
	body   any
}

// ApiMock is an HTTP server that records requests and replays scripted responses.
// Routes are keyed by method and path; a "*" path segment matches anything.
type ApiMock struct {
	mu        sync.Mutex
	server    *httptest.Server
	received  map[string][]RecordedRequest
	responses map[string]map[int]scriptedResponse
	defaults  map[string]scriptedResponse
}

// NewApiServer creates an ApiMock that is not yet listening.
func NewApiServer() *ApiMock {
	a := &ApiMock{}
	a.Reset()
	return a
}

// Start begins serving on a random local port.
func (a *ApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.serve))
}

// Close stops the server.
func (a *ApiMock) Close() {
	if a.server != nil {
		a.server.Close()
	}
}

// GetUrl returns the base URL of the running server.
func (a *ApiMock) GetUrl() string {
	return a.server.URL
}

// Reset forgets every recorded request and scripted response.
func (a *ApiMock) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.received = map[string][]RecordedRequest{}
	a.responses = map[string]map[int]scriptedResponse{}
	a.defaults = map[string]scriptedResponse{}
}

// SetResponse scripts the response for the index-th call to method and path.
// An index of -1 sets the response for every call without its own script.
func (a *ApiMock) SetResponse(index int, method, path string, status int, response map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := method + " " + path
	if index == -1 {
		a.defaults[key] = scriptedResponse{status: status, body: response}
		return
	}
	if a.responses[key] == nil {
		a.responses[key] = map[int]scriptedResponse{}
	}
	a.responses[key][index] = scriptedResponse{status: status, body: response}
}

// Requests returns the calls received for method and path, in order.
func (a *ApiMock) Requests(method, path string) []RecordedRequest {
	a.mu.Lock()
	defer a.mu.Unlock()

	var out []RecordedRequest
	for key, requests := range a.received {
		if matchKey(key, method, path) {
			out = append(out, requests...)
		}
	}
	return out
}

// GetRequestBody returns the JSON body of the index-th call, or nil.
func (a *ApiMock) GetRequestBody(method, path string, index int) map[string]any {
	requests := a.Requests(method, path)
	if index < 0 || index >= len(requests) {
		return nil
	}
	return requests[index].Body
}

func (a *ApiMock) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	request := RecordedRequest{
		Headers: map[string]string{},
		Query:   map[string]string{},
		Body:    map[string]any{},
	}
	_ = json.Unmarshal(body, &request.Body)
	for key, values := range r.Header {
		request.Headers[key] = values[0]
	}
	for key, values := range r.URL.Query() {
		request.Query[key] = values[0]
	}

	a.mu.Lock()
	key := r.Method + " " + r.URL.Path
	index := len(a.received[key])
	a.received[key] = append(a.received[key], request)
	response := a.lookup(r.Method, r.URL.Path, index)
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(response.status)
	_ = json.NewEncoder(w).Encode(response.body)
}

// lookup must be called with a.mu held.
func (a *ApiMock) lookup(method, path string, index int) scriptedResponse {
	for key, byIndex := range a.responses {
		if matchKey(key, method, path) {
			if response, ok := byIndex[index]; ok {
				return response
			}
		}
	}
	for key, response := range a.defaults {
		if matchKey(key, method, path) {
			return response
		}
	}
	return scriptedResponse{status: http.StatusOK, body: map[string]any{}}
}

func matchKey(key, method, path string) bool {
	keyMethod, keyPath, _ := strings.Cut(key, " ")
	if keyMethod != method {
		return false
	}
	if keyPath == path {
		return true
	}

	patternParts := strings.Split(keyPath, "/")
	pathParts := strings.Split(path, "/")
	if len(patternParts) != len(pathParts) {
		return false
	}
	for i := range patternParts {
		if patternParts[i] != "*" && patternParts[i] != pathParts[i] {
			return false
		}
	}
	return true
}
