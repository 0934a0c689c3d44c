// Package wiretypes implements the fixed-width domain codecs the built-in registry
// names but does not itself define: name, symbol, symbol_code and asset. These follow
// the classic EOSIO/wasm account-name and asset encodings the original abi_serializer
// delegates to wasm::types::{name,symbol,asset} for: fixed widths defined by their own
// type specifications, not redefined here.
package wiretypes

import (
	"fmt"
	"strings"
)

const nameCharset = ".12345abcdefghijklmnopqrstuvwxyz"

// charToSymbol maps one name character to its 5-bit code, 0 for anything not in the
// name alphabet (matching the original's char_to_symbol, which silently maps unknown
// characters to 0 rather than failing).
func charToSymbol(c byte) uint64 {
	switch {
	case c >= 'a' && c <= 'z':
		return uint64(c-'a') + 6
	case c >= '1' && c <= '5':
		return uint64(c-'1') + 1
	default:
		return 0
	}
}

// EncodeName packs a name string (at most 13 characters drawn from ".12345a-z") into
// its 8-byte little-endian wire form. The first 12 characters take 5 bits each; a 13th
// character keeps only its low 4 bits, so only ".12345a-j" round-trip in that position.
func EncodeName(s string) (uint64, error) {
	if len(s) > 13 {
		return 0, fmt.Errorf("name %q exceeds 13 characters", s)
	}
	var value uint64
	n := len(s)
	if n > 12 {
		n = 12
	}
	for i := 0; i < n; i++ {
		value |= (charToSymbol(s[i]) & 0x1f) << (64 - 5*(i+1))
	}
	if len(s) == 13 {
		value |= charToSymbol(s[12]) & 0x0f
	}
	return value, nil
}

// DecodeName unpacks the 8-byte wire form back into its string representation.
func DecodeName(value uint64) string {
	var out [13]byte
	for i := range out {
		out[i] = '.'
	}
	tmp := value
	for i := 0; i <= 12; i++ {
		var c byte
		if i == 0 {
			c = nameCharset[tmp&0x0f]
			tmp >>= 4
		} else {
			c = nameCharset[tmp&0x1f]
			tmp >>= 5
		}
		out[12-i] = c
	}
	return strings.TrimRight(string(out[:]), ".")
}
