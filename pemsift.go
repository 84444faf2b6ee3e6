// Package pemsift locates XML payloads embedded inside ASN.1-encoded PEM
// containers (CMS, PKCS#7, X.509 certificates).
package pemsift

import (
	"bytes"
	"encoding/pem"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Sentinel errors distinguishing the failure layers of the extraction
// pipeline. Callers test with errors.Is.
var (
	// ErrNoPEMBlock is returned when the input contains no PEM block of a
	// recognized type.
	ErrNoPEMBlock = errors.New("no recognized PEM block found")

	// ErrDecode is returned when the base64/DER layer itself is invalid.
	ErrDecode = errors.New("invalid ASN.1 DER data")

	// ErrNoXML is returned when the container decoded successfully but no
	// embedded XML document could be located.
	ErrNoXML = errors.New("no embedded XML document found")
)

// DefaultBlockTypes returns the PEM block types searched by default.
// Returns a fresh copy each call.
func DefaultBlockTypes() []string {
	return []string{"CMS", "PKCS7", "CERTIFICATE"}
}

// IsPEM returns true if the data appears to contain PEM-encoded content.
func IsPEM(data []byte) bool {
	return bytes.Contains(data, []byte("-----BEGIN"))
}

// DecodePEM scans the data for PEM blocks and returns the DER bytes of the
// first block whose type is in blockTypes. Blocks of other types are
// skipped. Returns ErrNoPEMBlock when no matching block exists, which also
// covers bodies whose base64 payload cannot be decoded.
func DecodePEM(data []byte, blockTypes []string) ([]byte, error) {
	rest := data
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		if slices.Contains(blockTypes, block.Type) {
			return block.Bytes, nil
		}
	}
	return nil, fmt.Errorf("%w (looked for %s)", ErrNoPEMBlock, strings.Join(blockTypes, ", "))
}
