package pemsift

import (
	"fmt"
	"regexp"

	"github.com/smallstep/pkcs7"
)

// xmlPattern matches an XML document from its declaration through the first
// closing tag that follows. The match is non-greedy and case-insensitive on
// the "xml" token only. This is a best-effort boundary heuristic, not an
// XML-aware scan: a closing tag of an inner element can end the match early
// when the payload is not a single-rooted document.
var xmlPattern = regexp.MustCompile(`(?s)<\?[xX][mM][lL].*?</[^>]+>`)

// LocateXML finds the first XML document embedded in a DER-encoded ASN.1
// structure. It first attempts a structured PKCS#7/CMS parse and searches
// the envelope's content payload; if that yields nothing it falls back to a
// depth-first search over the generic decoded value tree, applying the same
// pattern to every string leaf. Some producers wrap XML directly as signed
// content while others bury it in nested octet strings outside a standard
// envelope, so both tiers are needed.
//
// Returns ErrNoXML when neither tier matches, or an ErrDecode-wrapped error
// when the DER layer itself is invalid.
func LocateXML(der []byte) (string, error) {
	if p7, err := pkcs7.Parse(der); err == nil {
		if match := xmlPattern.Find(p7.Content); match != nil {
			return string(match), nil
		}
	}

	values, err := ParseDER(der)
	if err != nil {
		return "", fmt.Errorf("decoding container: %w", err)
	}
	for _, v := range values {
		if match := searchValue(v); match != "" {
			return match, nil
		}
	}
	return "", ErrNoXML
}

// searchValue walks a value tree depth-first and returns the first XML
// pattern match found in a leaf, in ASN.1 traversal order.
func searchValue(v *Value) string {
	if v.IsLeaf() {
		return string(xmlPattern.Find(v.Bytes))
	}
	for _, child := range v.Children {
		if match := searchValue(child); match != "" {
			return match
		}
	}
	return ""
}
