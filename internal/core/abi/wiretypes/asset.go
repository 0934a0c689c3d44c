package wiretypes

import (
	"fmt"
	"strconv"
	"strings"
)

// Asset is the decoded amount/symbol pair. Wire form is a little-endian int64 amount
// followed by the 8-byte symbol, 16 bytes total.
type Asset struct {
	Amount int64
	Symbol uint64
}

// EncodeAsset parses "<amount> <CODE>" (e.g. "1.0000 EOS") against its intended
// precision, inferred from the number of digits after the decimal point, and returns
// the wire-form amount plus a symbol value with that precision.
func EncodeAsset(s string) (Asset, error) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return Asset{}, fmt.Errorf("asset %q must be of the form \"<amount> <CODE>\"", s)
	}
	amountStr, code := parts[0], parts[1]

	precision := 0
	digits := amountStr
	if dot := strings.IndexByte(amountStr, '.'); dot >= 0 {
		precision = len(amountStr) - dot - 1
		digits = amountStr[:dot] + amountStr[dot+1:]
	}
	amount, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return Asset{}, fmt.Errorf("asset %q: invalid amount: %w", s, err)
	}

	symCode, err := EncodeSymbolCode(code)
	if err != nil {
		return Asset{}, fmt.Errorf("asset %q: %w", s, err)
	}
	if precision > 255 {
		return Asset{}, fmt.Errorf("asset %q: precision %d out of range", s, precision)
	}
	return Asset{Amount: amount, Symbol: (symCode << 8) | uint64(precision)}, nil
}

// DecodeAsset renders an Asset back into "<amount> <CODE>" form.
func DecodeAsset(a Asset) string {
	precision := SymbolPrecision(a.Symbol)
	code := DecodeSymbolCode(a.Symbol >> 8)

	neg := a.Amount < 0
	abs := a.Amount
	if neg {
		abs = -abs
	}
	digits := strconv.FormatInt(abs, 10)
	for len(digits) <= int(precision) {
		digits = "0" + digits
	}

	var amountStr string
	if precision == 0 {
		amountStr = digits
	} else {
		split := len(digits) - int(precision)
		amountStr = digits[:split] + "." + digits[split:]
	}
	if neg {
		amountStr = "-" + amountStr
	}
	return fmt.Sprintf("%s %s", amountStr, code)
}
