package pemsift

import (
	"encoding/asn1"
	"errors"
	"testing"
)

// octetWrap is marshaled by encoding/asn1 as SEQUENCE { OCTET STRING }.
type octetWrap struct {
	Payload []byte
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	der, err := asn1.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return der
}

func TestParseDER_primitiveLeaf(t *testing.T) {
	t.Parallel()
	der := mustMarshal(t, "hello")

	values, err := ParseDER(der)
	if err != nil {
		t.Fatal(err)
	}
	if len(values) != 1 {
		t.Fatalf("got %d top-level values, want 1", len(values))
	}
	v := values[0]
	if !v.IsLeaf() {
		t.Error("primitive string should be a leaf")
	}
	if string(v.Bytes) != "hello" {
		t.Errorf("leaf bytes = %q, want %q", v.Bytes, "hello")
	}
}

func TestParseDER_compoundChildren(t *testing.T) {
	// WHY: The locator's fallback search depends on SEQUENCE values
	// exposing their fields as children in encoding order.
	t.Parallel()
	type pair struct {
		Name  string
		Count int
	}
	der := mustMarshal(t, pair{Name: "x", Count: 3})

	values, err := ParseDER(der)
	if err != nil {
		t.Fatal(err)
	}
	root := values[0]
	if root.IsLeaf() {
		t.Fatal("SEQUENCE should not be a leaf")
	}
	if len(root.Children) != 2 {
		t.Fatalf("got %d children, want 2", len(root.Children))
	}
	if string(root.Children[0].Bytes) != "x" {
		t.Errorf("first child = %q, want %q", root.Children[0].Bytes, "x")
	}
	if root.Children[1].Tag != asn1.TagInteger {
		t.Errorf("second child tag = %d, want INTEGER", root.Children[1].Tag)
	}
}

func TestParseDER_nestedDERInsideOctetString(t *testing.T) {
	// WHY: Producers bury whole structures inside OCTET STRING wrappers;
	// the tree must decode through them or the fallback search goes blind.
	t.Parallel()
	inner := mustMarshal(t, octetWrap{Payload: []byte("deep")})
	outer := mustMarshal(t, octetWrap{Payload: inner})

	values, err := ParseDER(outer)
	if err != nil {
		t.Fatal(err)
	}
	octet := values[0].Children[0]
	if octet.Tag != asn1.TagOctetString {
		t.Fatalf("child tag = %d, want OCTET STRING", octet.Tag)
	}
	if octet.IsLeaf() {
		t.Fatal("octet string holding valid DER should have children")
	}
	leaf := octet.Children[0].Children[0]
	if string(leaf.Bytes) != "deep" {
		t.Errorf("nested leaf = %q, want %q", leaf.Bytes, "deep")
	}
}

func TestParseDER_opaqueOctetStringStaysLeaf(t *testing.T) {
	t.Parallel()
	der := mustMarshal(t, octetWrap{Payload: []byte("<not asn1 content at all>")})

	values, err := ParseDER(der)
	if err != nil {
		t.Fatal(err)
	}
	octet := values[0].Children[0]
	if !octet.IsLeaf() {
		t.Error("octet string with non-DER content should stay a leaf")
	}
}

func TestParseDER_invalidDER(t *testing.T) {
	t.Parallel()
	_, err := ParseDER([]byte{0x30, 0xFF, 0x01})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode, got: %v", err)
	}
}
