package noteservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ferrant/nous/internal/apperr"
	"github.com/ferrant/nous/internal/testutil"
)

func TestListNodes(t *testing.T) {
	root, svc := testutil.TestService(t)
	testutil.WriteNode(t, root, "alpha.md", "a")
	testutil.WriteNode(t, root, "sub/beta.org", "b")
	testutil.WriteNode(t, root, "sub/notes.json", "ignored")

	items, err := svc.ListNodes(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].Name != "alpha" || items[0].Path != "alpha.md" {
		t.Errorf("items[0] = %+v", items[0])
	}
	if items[1].Name != "beta" || items[1].Path != "sub/beta.org" {
		t.Errorf("items[1] = %+v", items[1])
	}
}

func TestNodePath_CaseInsensitive(t *testing.T) {
	root, svc := testutil.TestService(t)
	testutil.WriteNode(t, root, "sub/Idea.md", "x")

	path, err := svc.NodePath(context.Background(), "idea")
	if err != nil {
		t.Fatal(err)
	}
	if path != "sub/Idea.md" {
		t.Errorf("path = %q, want sub/Idea.md", path)
	}
}

func TestGetNode(t *testing.T) {
	root, svc := testutil.TestService(t)
	testutil.WriteNode(t, root, "a.md", "see [[b]] and [[Ghost]]")
	testutil.WriteNode(t, root, "b.md", "back to [[a]]")

	node, err := svc.GetNode(context.Background(), "a")
	if err != nil {
		t.Fatal(err)
	}
	if node.Name != "a" || node.Path != "a.md" {
		t.Errorf("node = %+v", node)
	}
	if node.Content != "see [[b]] and [[Ghost]]" {
		t.Errorf("content = %q", node.Content)
	}
	if len(node.Links.Forward) != 2 {
		t.Fatalf("forward = %+v", node.Links.Forward)
	}
	if node.Links.Forward[0].Path != "b.md" {
		t.Errorf("forward[0].Path = %q, want realm-relative b.md", node.Links.Forward[0].Path)
	}
	if node.Links.Forward[1].Target != "Ghost" || node.Links.Forward[1].Path != "" {
		t.Errorf("forward[1] = %+v, want unresolved Ghost", node.Links.Forward[1])
	}
	if len(node.Links.Backlinks) != 1 || node.Links.Backlinks[0] != "b.md" {
		t.Errorf("backlinks = %v, want [b.md]", node.Links.Backlinks)
	}
}

func TestGetNode_NotFound(t *testing.T) {
	_, svc := testutil.TestService(t)
	_, err := svc.GetNode(context.Background(), "missing")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestLinks_AlwaysNonNil(t *testing.T) {
	root, svc := testutil.TestService(t)
	testutil.WriteNode(t, root, "lonely.md", "no links here")

	links, err := svc.Links(context.Background(), "lonely")
	if err != nil {
		t.Fatal(err)
	}
	if links.Backlinks == nil || links.Forward == nil {
		t.Fatalf("links = %+v, want non-nil slices", links)
	}
	if len(links.Backlinks) != 0 || len(links.Forward) != 0 {
		t.Errorf("links = %+v, want empty", links)
	}
}

func TestForwardLinks_RealmRelativePaths(t *testing.T) {
	root, svc := testutil.TestService(t)
	testutil.WriteNode(t, root, "a.md", "[[b]] and [[ghost]]")
	testutil.WriteNode(t, root, "sub/b.md", "x")

	fwd, err := svc.ForwardLinks(context.Background(), "a")
	if err != nil {
		t.Fatal(err)
	}
	if len(fwd) != 2 {
		t.Fatalf("len(fwd) = %d, want 2", len(fwd))
	}
	if fwd[0].Target != "b" || fwd[0].Path != "sub/b.md" {
		t.Errorf("fwd[0] = %+v, want b resolved to sub/b.md", fwd[0])
	}
	if fwd[1].Target != "ghost" || fwd[1].Path != "" {
		t.Errorf("fwd[1] = %+v, want unresolved ghost", fwd[1])
	}
}

func TestBacklinks_RealmRelativePaths(t *testing.T) {
	root, svc := testutil.TestService(t)
	testutil.WriteNode(t, root, "sub/src.md", "[[dst]]")
	testutil.WriteNode(t, root, "dst.md", "x")

	back, err := svc.Backlinks(context.Background(), "dst")
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != 1 || back[0] != "sub/src.md" {
		t.Errorf("back = %v, want [sub/src.md]", back)
	}

	none, err := svc.Backlinks(context.Background(), "src")
	if err != nil {
		t.Fatal(err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("none = %#v, want empty non-nil slice", none)
	}
}
