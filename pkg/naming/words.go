package naming

import "strings"

// English number words. Composition follows the usual library convention:
// hyphenated tens ("twenty-one"), "and" before a sub-hundred remainder
// ("one hundred and one"), comma-separated scale groups ("one thousand,
// two hundred and thirty-four").

var ones = [20]string{
	"zero", "one", "two", "three", "four", "five", "six", "seven",
	"eight", "nine", "ten", "eleven", "twelve", "thirteen", "fourteen",
	"fifteen", "sixteen", "seventeen", "eighteen", "nineteen",
}

var tens = [10]string{
	"", "", "twenty", "thirty", "forty", "fifty",
	"sixty", "seventy", "eighty", "ninety",
}

// scales in descending order; quintillion covers the full int64 range.
var scales = []struct {
	value int
	word  string
}{
	{1_000_000_000_000_000_000, "quintillion"},
	{1_000_000_000_000_000, "quadrillion"},
	{1_000_000_000_000, "trillion"},
	{1_000_000_000, "billion"},
	{1_000_000, "million"},
	{1_000, "thousand"},
}

// irregularOrdinals maps cardinal final words that do not take a plain
// "th" suffix.
var irregularOrdinals = map[string]string{
	"one":    "first",
	"two":    "second",
	"three":  "third",
	"five":   "fifth",
	"eight":  "eighth",
	"nine":   "ninth",
	"twelve": "twelfth",
}

// Cardinal returns the English cardinal words for n ("one", "twenty-one",
// "one hundred and one", ...).
func Cardinal(n int) string {
	if n < 0 {
		return "minus " + Cardinal(-n)
	}
	if n < 20 {
		return ones[n]
	}
	if n < 100 {
		s := tens[n/10]
		if n%10 != 0 {
			s += "-" + ones[n%10]
		}
		return s
	}
	if n < 1000 {
		s := ones[n/100] + " hundred"
		if r := n % 100; r != 0 {
			s += " and " + Cardinal(r)
		}
		return s
	}
	sc := scales[len(scales)-1]
	for _, s := range scales {
		if n >= s.value {
			sc = s
			break
		}
	}
	s := Cardinal(n/sc.value) + " " + sc.word
	switch r := n % sc.value; {
	case r == 0:
	case r < 100:
		s += " and " + Cardinal(r)
	default:
		s += ", " + Cardinal(r)
	}
	return s
}

// Ordinal returns the English ordinal words for n ("first", "twenty-first",
// "one hundredth", ...). Only the final word changes form.
func Ordinal(n int) string {
	c := Cardinal(n)
	i := strings.LastIndexAny(c, " -")
	prefix, last := c[:i+1], c[i+1:]

	if w, ok := irregularOrdinals[last]; ok {
		return prefix + w
	}
	if strings.HasSuffix(last, "y") {
		return prefix + last[:len(last)-1] + "ieth"
	}
	return c + "th"
}
