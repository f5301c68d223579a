package cvn1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

const testContract = "0xc0ffee"

type viewCall struct {
	Function  string
	Arguments []any
}

// fakeNode answers view calls by function name. Unknown functions fail with
// a 500 so tests notice unexpected requests.
type fakeNode struct {
	t      *testing.T
	mutex  sync.Mutex
	views  map[string]string
	status map[string]int
	calls  []viewCall
	routes map[string]http.HandlerFunc
	server *httptest.Server
}

func newFakeNode(t *testing.T) *fakeNode {
	t.Helper()
	node := &fakeNode{
		t:      t,
		views:  map[string]string{},
		status: map[string]int{},
		routes: map[string]http.HandlerFunc{},
	}
	node.server = httptest.NewServer(http.HandlerFunc(node.serve))
	t.Cleanup(node.server.Close)
	return node
}

func (n *fakeNode) respond(function string, body string) {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	n.views[testContract+"::vault_views::"+function] = body
}

func (n *fakeNode) fail(function string, status int) {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	n.status[testContract+"::vault_views::"+function] = status
}

func (n *fakeNode) route(path string, handler http.HandlerFunc) {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	n.routes[path] = handler
}

func (n *fakeNode) recorded() []viewCall {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	return append([]viewCall(nil), n.calls...)
}

func (n *fakeNode) serve(w http.ResponseWriter, r *http.Request) {
	n.mutex.Lock()
	handler, routed := n.routes[r.URL.Path]
	n.mutex.Unlock()
	if routed {
		handler(w, r)
		return
	}

	if r.URL.Path != "/v1/view" {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"not found","error_code":"web_framework_error"}`))
		return
	}

	var request struct {
		Function      string   `json:"function"`
		TypeArguments []string `json:"type_arguments"`
		Arguments     []any    `json:"arguments"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		n.t.Errorf("failed to decode view request: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	n.mutex.Lock()
	n.calls = append(n.calls, viewCall{Function: request.Function, Arguments: request.Arguments})
	body, known := n.views[request.Function]
	status := n.status[request.Function]
	n.mutex.Unlock()

	if status != 0 {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"message":"failure","error_code":"internal_error"}`))
		return
	}
	if !known {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"unexpected view ` + strings.ReplaceAll(request.Function, `"`, "") + `"}`))
		return
	}
	_, _ = w.Write([]byte(body))
}

func newTestClient(t *testing.T, node *fakeNode, configure ...func(*ClientConfig)) *Client {
	t.Helper()
	config := ClientConfig{
		NodeURL:         node.server.URL,
		IndexerURL:      node.server.URL + "/v1/graphql",
		ContractAddress: testContract,
	}
	for _, apply := range configure {
		apply(&config)
	}
	client, err := NewClient(config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return client
}
