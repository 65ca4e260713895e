package dom

import (
	"testing"
)

func ids(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAppendChild(t *testing.T) {
	root := NewElement("div", "root")
	a := root.AppendChild(NewElement("p", "a"))
	root.AppendChild(NewElement("p", "b"))

	if a.Parent() != root {
		t.Error("AppendChild should set parent")
	}
	if got := ids(root.Children()); !equal(got, []string{"a", "b"}) {
		t.Errorf("children = %v", got)
	}
	if root.FirstChild() != a {
		t.Error("FirstChild should be a")
	}
	if a.NextSibling().ID != "b" {
		t.Errorf("NextSibling = %v", a.NextSibling())
	}
}

func TestAppendChildMovesNode(t *testing.T) {
	src := NewElement("div", "src")
	dst := NewElement("div", "dst")
	n := src.AppendChild(NewElement("p", "n"))

	dst.AppendChild(n)

	if src.ChildCount() != 0 {
		t.Errorf("source should be empty, has %d children", src.ChildCount())
	}
	if n.Parent() != dst {
		t.Error("node should be reparented")
	}
}

func TestInsertBefore(t *testing.T) {
	root := NewElement("div", "root")
	a := root.AppendChild(NewElement("p", "a"))
	b := root.AppendChild(NewElement("p", "b"))

	root.InsertBefore(NewElement("p", "x"), b)
	if got := ids(root.Children()); !equal(got, []string{"a", "x", "b"}) {
		t.Errorf("after insert = %v", got)
	}

	root.InsertBefore(NewElement("p", "y"), a)
	if got := ids(root.Children()); !equal(got, []string{"y", "a", "x", "b"}) {
		t.Errorf("after insert at front = %v", got)
	}

	// nil reference appends
	root.InsertBefore(NewElement("p", "z"), nil)
	if got := ids(root.Children()); !equal(got, []string{"y", "a", "x", "b", "z"}) {
		t.Errorf("after nil ref = %v", got)
	}

	// reference from another parent appends
	other := NewElement("div", "other")
	foreign := other.AppendChild(NewElement("p", "f"))
	root.InsertBefore(NewElement("p", "w"), foreign)
	if root.Child(root.ChildCount()-1).ID != "w" {
		t.Error("foreign reference should append")
	}
}

func TestInsertBeforeWithinSameParent(t *testing.T) {
	root := NewElement("div", "root")
	a := root.AppendChild(NewElement("p", "a"))
	root.AppendChild(NewElement("p", "b"))
	c := root.AppendChild(NewElement("p", "c"))

	root.InsertBefore(c, a)
	if got := ids(root.Children()); !equal(got, []string{"c", "a", "b"}) {
		t.Errorf("move within parent = %v", got)
	}
}

func TestClear(t *testing.T) {
	root := NewElement("div", "root")
	a := root.AppendChild(NewElement("p", "a"))
	root.Clear()
	if root.ChildCount() != 0 || a.Parent() != nil {
		t.Error("Clear should detach all children")
	}
}

func TestClasses(t *testing.T) {
	n := NewElement("div", "")
	n.SetClassName("rhr-region  rhr-region--article")
	n.AddClass("rhr-region--sufficient")
	n.AddClass("rhr-region")

	if got := n.ClassName(); got != "rhr-region rhr-region--article rhr-region--sufficient" {
		t.Errorf("ClassName = %q", got)
	}
	if !n.HasClass("rhr-region--article") {
		t.Error("HasClass should find instance class")
	}
}

func TestDataAttr(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"oAdsFormatsLarge", "data-o-ads-formats-large"},
		{"configKey", "data-config-key"},
		{"id", "data-id"},
	}
	for _, tt := range tests {
		if got := DataAttr(tt.key); got != tt.want {
			t.Errorf("DataAttr(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestProps(t *testing.T) {
	n := NewElement("div", "")
	if n.Prop("cmd") != nil {
		t.Error("unset prop should be nil")
	}
	n.SetProp("cmd", 42)
	if n.Prop("cmd") != 42 {
		t.Error("prop not stored")
	}
}
