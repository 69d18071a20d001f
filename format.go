package ferricalc

import (
	"math/big"
	"strconv"
	"strings"
)

// DisplayDigits is the default number of significant decimal digits shown
// for a result.
const DisplayDigits = 32

// FormatFloat renders x using at most digits significant decimal digits,
// correctly rounded. Values whose magnitude sits within the digit budget
// print as plain decimals; everything else falls back to scientific
// notation. Trailing fractional zeros are always trimmed, and the decimal
// point is dropped when nothing follows it.
func FormatFloat(x *big.Float, digits int) string {
	if x.Sign() == 0 {
		return "0"
	}
	if x.IsInf() {
		if x.Signbit() {
			return "-inf"
		}
		return "inf"
	}
	mant, exp := digitsExp(x, digits)
	var s string
	switch {
	case 0 < exp && exp < digits:
		s = insertPoint(mant, exp)
	case exp == digits:
		s = mant
	case -digits < exp && exp <= 0:
		s = "0." + strings.Repeat("0", -exp) + strings.TrimRight(mant, "0")
	default:
		s = insertPoint(mant, 1) + "e" + strconv.Itoa(exp-1)
	}
	if x.Signbit() {
		return "-" + s
	}
	return s
}

// digitsExp returns x's leading significant digits, padded to exactly
// digits, and the decimal exponent such that |x| = 0.<digits> × 10^exp.
func digitsExp(x *big.Float, digits int) (string, int) {
	t := strings.TrimPrefix(x.Text('e', digits-1), "-")
	mant, es, ok := strings.Cut(t, "e")
	if !ok {
		panic("ferricalc: malformed float text " + strconv.Quote(t))
	}
	e, err := strconv.Atoi(es)
	if err != nil {
		panic("ferricalc: malformed float exponent " + strconv.Quote(es))
	}
	return strings.Replace(mant, ".", "", 1), e + 1
}

// insertPoint places a decimal point after the i'th digit, trimming
// trailing fractional zeros and dropping the point when nothing remains
// after it.
func insertPoint(mant string, i int) string {
	l, r := mant[:i], strings.TrimRight(mant[i:], "0")
	if r == "" {
		return l
	}
	return l + "." + r
}
