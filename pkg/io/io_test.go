package io

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/boxscope/pkg/errors"
	"github.com/matzehuels/boxscope/pkg/geom"
)

const sampleDump = `{
  "root": "window",
  "snapshot": {"nodeId": "window", "width": 1080, "height": 1920},
  "nodes": [
    {"id": "window", "name": "DecorView", "bounds": {"x": 0, "y": 0, "width": 1080, "height": 1920}, "children": ["tabs", "ghost"]},
    {"id": "tabs", "name": "TabHost", "activeChild": "settings", "bounds": {"x": 0, "y": 100, "width": 1080, "height": 1700}, "children": ["home", "settings"]},
    {"id": "home", "parent": "tabs", "bounds": {"width": 1080, "height": 1700}},
    {"id": "settings", "parent": "tabs", "bounds": {"width": 1080, "height": 1700}}
  ]
}`

func TestReadJSON(t *testing.T) {
	doc, err := ReadJSON(strings.NewReader(sampleDump))
	if err != nil {
		t.Fatalf("ReadJSON error: %v", err)
	}

	if doc.Root != "window" {
		t.Errorf("Root = %q, want window", doc.Root)
	}
	if len(doc.Nodes) != 4 {
		t.Errorf("len(Nodes) = %d, want 4", len(doc.Nodes))
	}
	tabs := doc.Nodes["tabs"]
	if tabs.ActiveChild != "settings" || tabs.Name != "TabHost" {
		t.Errorf("tabs = %+v", tabs)
	}
	if want := (geom.Bounds{Y: 100, Width: 1080, Height: 1700}); tabs.Bounds != want {
		t.Errorf("tabs.Bounds = %v, want %v", tabs.Bounds, want)
	}
	// Dangling ids are preserved for the projector to handle.
	if got := doc.Nodes["window"].Children; !reflect.DeepEqual(got, []string{"tabs", "ghost"}) {
		t.Errorf("window.Children = %v", got)
	}
	if doc.Snapshot == nil || doc.Snapshot.Width != 1080 {
		t.Errorf("Snapshot = %+v", doc.Snapshot)
	}
}

func TestReadJSONInfersParents(t *testing.T) {
	doc, err := ReadJSON(strings.NewReader(sampleDump))
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Nodes["tabs"].Parent; got != "window" {
		t.Errorf("tabs.Parent = %q, want window", got)
	}
	if got := doc.Nodes["home"].Parent; got != "tabs" {
		t.Errorf("home.Parent = %q, want tabs", got)
	}
}

func TestReadJSONRootSelection(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "explicit root",
			in:   `{"root": "b", "nodes": [{"id": "a"}, {"id": "b"}]}`,
			want: "b",
		},
		{
			name: "snapshot node",
			in:   `{"snapshot": {"nodeId": "b"}, "nodes": [{"id": "a"}, {"id": "b"}]}`,
			want: "b",
		},
		{
			name: "first parentless node",
			in:   `{"nodes": [{"id": "child", "parent": "top"}, {"id": "top", "children": ["child"]}]}`,
			want: "top",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ReadJSON(strings.NewReader(tt.in))
			if err != nil {
				t.Fatalf("ReadJSON error: %v", err)
			}
			if doc.Root != tt.want {
				t.Errorf("Root = %q, want %q", doc.Root, tt.want)
			}
		})
	}
}

func TestReadJSONSynthesizesSnapshot(t *testing.T) {
	in := `{"nodes": [{"id": "a", "bounds": {"width": 320, "height": 480}}]}`
	doc, err := ReadJSON(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Snapshot == nil {
		t.Fatal("Snapshot = nil")
	}
	if doc.Snapshot.NodeID != "a" || doc.Snapshot.Width != 320 || doc.Snapshot.Height != 480 {
		t.Errorf("Snapshot = %+v", doc.Snapshot)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"malformed", `{"nodes": [`},
		{"empty id", `{"nodes": [{"id": ""}]}`},
		{"control char id", `{"nodes": [{"id": "a\u0001"}]}`},
		{"duplicate id", `{"nodes": [{"id": "a"}, {"id": "a"}]}`},
		{"no root", `{"nodes": []}`},
		{"cyclic parents without root", `{"nodes": [{"id": "a", "parent": "b"}, {"id": "b", "parent": "a"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.in))
			if err == nil {
				t.Fatal("ReadJSON should fail")
			}
			if !errors.Is(err, errors.ErrCodeInvalidSnapshot) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidSnapshot)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	doc, err := ReadJSON(strings.NewReader(sampleDump))
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "dump.json")
	if err := ExportJSON(doc, path); err != nil {
		t.Fatalf("ExportJSON error: %v", err)
	}
	again, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON error: %v", err)
	}

	if !reflect.DeepEqual(doc, again) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", again, doc)
	}
}

func TestWriteJSONIncludesUnorderedNodes(t *testing.T) {
	doc, err := ReadJSON(strings.NewReader(`{"nodes": [{"id": "a"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	doc.Nodes["z"] = doc.Nodes["a"]
	z := doc.Nodes["z"]
	z.ID = "z"
	doc.Nodes["z"] = z

	var buf bytes.Buffer
	if err := WriteJSON(doc, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"id": "z"`) {
		t.Errorf("output missing node z:\n%s", buf.String())
	}
}

func TestImportJSONMissingFile(t *testing.T) {
	_, err := ImportJSON(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportJSON error = %v, want %v", err, errors.ErrCodeFileNotFound)
	}

	_, _, err = ImportJSONWithData(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportJSONWithData error = %v, want %v", err, errors.ErrCodeFileNotFound)
	}
}

func TestPrune(t *testing.T) {
	doc, err := ReadJSON(strings.NewReader(`{
  "root": "w",
  "nodes": [
    {"id": "w", "bounds": {"width": 10, "height": 10}, "children": ["a", "ghost"], "activeChild": "ghost"},
    {"id": "a", "parent": "w", "children": ["gone"]},
    {"id": "orphan", "parent": "missing"}
  ]
}`))
	if err != nil {
		t.Fatal(err)
	}

	if got := Prune(doc); got != 4 {
		t.Errorf("Prune() = %d, want 4", got)
	}
	w := doc.Nodes["w"]
	if !reflect.DeepEqual(w.Children, []string{"a"}) || w.ActiveChild != "" {
		t.Errorf("w = %+v, want children [a] and no active child", w)
	}
	if a := doc.Nodes["a"]; a.Children != nil || a.Parent != "w" {
		t.Errorf("a = %+v, want no children and parent w", a)
	}
	if o := doc.Nodes["orphan"]; o.Parent != "" {
		t.Errorf("orphan parent = %q, want empty", o.Parent)
	}
	if len(doc.Nodes) != 3 {
		t.Errorf("nodes = %d, want 3", len(doc.Nodes))
	}

	if got := Prune(doc); got != 0 {
		t.Errorf("second Prune() = %d, want 0", got)
	}
}
