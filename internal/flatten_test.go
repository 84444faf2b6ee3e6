package internal

import (
	"reflect"
	"strings"
	"testing"
)

func TestFlatten_roundTripShape(t *testing.T) {
	// WHY: The canonical shape contract for the whole transformation:
	// attributes, repeated siblings with zero-based indices, and leaf text
	// must land on exactly these paths.
	t.Parallel()
	tree, err := ParseXML(`<a x="1"><b>hi</b><b>bye</b></a>`)
	if err != nil {
		t.Fatal(err)
	}
	rec, err := Flatten(tree)
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]string{
		"a.@x":         "1",
		"a.b[0].#text": "hi",
		"a.b[1].#text": "bye",
	}
	if rec.Len() != len(want) {
		t.Fatalf("got %d entries %v, want %d", rec.Len(), rec.Keys(), len(want))
	}
	for key, wantVal := range want {
		got, ok := rec.Get(key)
		if !ok {
			t.Errorf("missing path %q", key)
			continue
		}
		if got != wantVal {
			t.Errorf("path %q = %q, want %q", key, got, wantVal)
		}
	}
}

func TestFlatten_keyOrderFollowsDocumentOrder(t *testing.T) {
	t.Parallel()
	tree, err := ParseXML(`<r z="last-attr-first"><m>1</m><a>2</a></r>`)
	if err != nil {
		t.Fatal(err)
	}
	rec, err := Flatten(tree)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"r.@z", "r.m.#text", "r.a.#text"}
	if got := rec.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("key order = %v, want %v", got, want)
	}
}

func TestFlatten_entryCountEqualsLeavesPlusAttributes(t *testing.T) {
	// WHY: For trees without sibling collisions, every leaf text and every
	// attribute yields exactly one entry, no more, no fewer.
	t.Parallel()
	doc := `<root version="2">
		<name>widget</name>
		<dims unit="mm"><w>10</w><h>20</h></dims>
		<empty/>
	</root>`
	tree, err := ParseXML(doc)
	if err != nil {
		t.Fatal(err)
	}
	rec, err := Flatten(tree)
	if err != nil {
		t.Fatal(err)
	}
	// 2 attributes + 3 leaf texts; <empty/> contributes nothing.
	if rec.Len() != 5 {
		t.Errorf("got %d entries %v, want 5", rec.Len(), rec.Keys())
	}
	for _, key := range rec.Keys() {
		if strings.HasSuffix(key, ".") || strings.Contains(key, "..") {
			t.Errorf("malformed path %q", key)
		}
	}
}

func TestFlatten_scalarInsideList(t *testing.T) {
	t.Parallel()
	n := NewNode()
	n.Add("v", Scalar("a"))
	n.Add("v", Scalar("b"))

	rec, err := Flatten(n)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := rec.Get("v[0]"); got != "a" {
		t.Errorf("v[0] = %q, want a", got)
	}
	if got, _ := rec.Get("v[1]"); got != "b" {
		t.Errorf("v[1] = %q, want b", got)
	}
}

func TestFlatten_collisionIsError(t *testing.T) {
	// WHY: A path collision means the indexing invariant was violated
	// upstream; the flattener must fail loudly, never drop data.
	t.Parallel()
	inner := NewNode()
	inner.Add("b", Scalar("from-nested"))
	n := NewNode()
	n.Add("a.b", Scalar("from-flat-key"))
	n.Add("a", inner)

	_, err := Flatten(n)
	if err == nil {
		t.Fatal("expected collision error")
	}
	if !strings.Contains(err.Error(), "duplicate flattened path") {
		t.Errorf("expected duplicate path error, got: %v", err)
	}
}

func TestFlatRecordSet_rejectsDuplicates(t *testing.T) {
	t.Parallel()
	rec := NewFlatRecord()
	if err := rec.Set("k", "1"); err != nil {
		t.Fatal(err)
	}
	if err := rec.Set("k", "2"); err == nil {
		t.Fatal("expected error on duplicate Set")
	}
	if got, _ := rec.Get("k"); got != "1" {
		t.Errorf("original value overwritten: %q", got)
	}
}
