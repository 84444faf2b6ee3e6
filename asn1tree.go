package pemsift

import (
	"encoding/asn1"
	"fmt"
)

// Value is one node of a generic decoded ASN.1 value tree. Compound values
// (SEQUENCE, SET, constructed context-specific values) carry Children;
// primitive values carry only Bytes. Octet strings and context-specific
// values whose contents are themselves valid DER also carry Children, since
// producers commonly nest whole structures inside OCTET STRING wrappers.
type Value struct {
	Class    int
	Tag      int
	Bytes    []byte
	Children []*Value
}

// IsLeaf reports whether the value has no decoded child values.
func (v *Value) IsLeaf() bool {
	return len(v.Children) == 0
}

// ParseDER decodes DER data into a sequence of generic ASN.1 value trees,
// one per top-level value. Returns an ErrDecode-wrapped error if the
// top-level encoding is not valid DER.
func ParseDER(der []byte) ([]*Value, error) {
	values, err := parseValues(der)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return values, nil
}

func parseValues(data []byte) ([]*Value, error) {
	var values []*Value
	for len(data) > 0 {
		var raw asn1.RawValue
		rest, err := asn1.Unmarshal(data, &raw)
		if err != nil {
			return nil, err
		}
		values = append(values, buildValue(&raw))
		data = rest
	}
	return values, nil
}

func buildValue(raw *asn1.RawValue) *Value {
	v := &Value{Class: raw.Class, Tag: raw.Tag, Bytes: raw.Bytes}

	switch {
	case raw.IsCompound:
		v.Children, _ = parseValues(raw.Bytes)
	case raw.Class == asn1.ClassUniversal && raw.Tag == asn1.TagBitString &&
		len(raw.Bytes) > 2 && raw.Bytes[0] == 0 && isValidASN1(raw.Bytes[1:]):
		// DER nested inside a bit string with zero unused bits
		v.Children, _ = parseValues(raw.Bytes[1:])
	case (raw.Class != asn1.ClassUniversal || raw.Tag == asn1.TagOctetString) &&
		len(raw.Bytes) > 1 && isValidASN1(raw.Bytes):
		// DER nested inside an octet string or context-specific value
		v.Children, _ = parseValues(raw.Bytes)
	}
	return v
}

// isValidASN1 reports whether data consists entirely of valid ASN.1 values.
func isValidASN1(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	for len(data) > 0 {
		var raw asn1.RawValue
		rest, err := asn1.Unmarshal(data, &raw)
		if err != nil {
			return false
		}
		data = rest
	}
	return true
}
