package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ferrant/nous/internal/graph"
	"github.com/ferrant/nous/internal/testutil"
)

// testEnv sets up a temp realm, service, and router for testing.
// An empty authToken means auth is disabled.
func testEnv(t *testing.T, authToken string) (string, http.Handler) {
	t.Helper()
	root, svc := testutil.TestService(t)
	router := NewRouter(svc, authToken != "", authToken, nil)
	return root, router
}

func get(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListNodes(t *testing.T) {
	root, router := testEnv(t, "")
	testutil.WriteNode(t, root, "alpha.md", "# Alpha")
	testutil.WriteNode(t, root, "sub/beta.org", "beta")

	w := get(t, router, "/nodes")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp NodeListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Total != 2 {
		t.Fatalf("total = %d, want 2", resp.Total)
	}
	if resp.Nodes[0].Name != "alpha" || resp.Nodes[0].Path != "alpha.md" {
		t.Errorf("nodes[0] = %+v", resp.Nodes[0])
	}
	if resp.Nodes[1].Path != "sub/beta.org" {
		t.Errorf("nodes[1] = %+v", resp.Nodes[1])
	}
}

func TestListNodes_EmptyRealm(t *testing.T) {
	_, router := testEnv(t, "")
	w := get(t, router, "/nodes")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp NodeListResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Nodes == nil || resp.Total != 0 {
		t.Errorf("resp = %+v, want empty list", resp)
	}
}

func TestGetNode(t *testing.T) {
	root, router := testEnv(t, "")
	testutil.WriteNode(t, root, "idea.md", "hello [[other]]")
	testutil.WriteNode(t, root, "other.md", "x")

	w := get(t, router, "/nodes/IDEA")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var node NodeDetail
	if err := json.Unmarshal(w.Body.Bytes(), &node); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if node.Name != "idea" || node.Content != "hello [[other]]" {
		t.Errorf("node = %+v", node)
	}
	if len(node.Links.Forward) != 1 || node.Links.Forward[0].Target != "other" {
		t.Errorf("forward = %+v", node.Links.Forward)
	}
}

func TestGetNode_NotFound(t *testing.T) {
	_, router := testEnv(t, "")
	w := get(t, router, "/nodes/ghost")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestLinks(t *testing.T) {
	root, router := testEnv(t, "")
	testutil.WriteNode(t, root, "a.md", "[[b]] [[ghost]]")
	testutil.WriteNode(t, root, "b.md", "[[a]]")

	w := get(t, router, "/nodes/a/links")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var links graph.Links
	if err := json.Unmarshal(w.Body.Bytes(), &links); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(links.Backlinks) != 1 || links.Backlinks[0] != "b.md" {
		t.Errorf("backlinks = %v, want [b.md]", links.Backlinks)
	}
	if len(links.Forward) != 2 {
		t.Fatalf("forward = %v, want 2 entries", links.Forward)
	}
	if links.Forward[1].Target != "ghost" || links.Forward[1].Path != "" {
		t.Errorf("forward[1] = %+v, want unresolved ghost", links.Forward[1])
	}
}

func TestLinks_UnknownNodeIsEmpty(t *testing.T) {
	_, router := testEnv(t, "")
	w := get(t, router, "/nodes/ghost/links")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var links graph.Links
	_ = json.Unmarshal(w.Body.Bytes(), &links)
	if len(links.Backlinks) != 0 || len(links.Forward) != 0 {
		t.Errorf("links = %+v, want empty", links)
	}
}

func TestAuth_TokenRequired(t *testing.T) {
	_, router := testEnv(t, "secret")

	w := get(t, router, "/nodes")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token status = %d, want 401", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/nodes", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong token status = %d, want 401", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/nodes", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("valid token status = %d, want 200", w.Code)
	}
}
