package runtime

import (
	"fmt"
	"maps"
	"math"
	"math/big"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// customTags are the validator tags generated code uses on top of the
// validator's built-in set.
var customTags = map[string]validator.Func{
	"array_contains":   arrayContains,
	"array_excludes":   arrayExcludes,
	"byte_length":      byteLength,
	"currency":         matchString(currencyRegex),
	"divisible_by":     divisibleBy,
	"ean":              isEAN,
	"firebase_push_id": matchString(firebasePushIDRegex),
	"full_width":       matchString(fullWidthRegex),
	"half_width":       matchString(halfWidthRegex),
	"hash":             isHash,
	"iban":             isIBAN,
	"identity_card":    isIdentityCard,
	"is_array":         kindOf(reflect.Slice, reflect.Array),
	"is_bool":          kindOf(reflect.Bool),
	"is_date":          isDate,
	"is_int":           isInt,
	"is_object":        kindOf(reflect.Struct, reflect.Map),
	"is_string":        kindOf(reflect.String),
	"isin":             isISIN,
	"iso8601":          isISO8601,
	"isrc":             matchString(isrcRegex),
	"latlong":          isLatLong,
	"magnet_uri":       matchString(magnetURIRegex),
	"mime_type":        matchString(mimeTypeRegex),
	"not_in":           notIn,
	"octal":            matchString(octalRegex),
	"passport":         matchString(passportRegex),
	"port_number":      isPortNumber,
	"postal_code":      matchString(postalCodeRegex),
	"surrogate_pair":   hasSurrogatePair,
	"variable_width":   isVariableWidth,
}

// CustomTags returns the names of the registered custom tags in sorted order.
func CustomTags() []string {
	return slices.Sorted(maps.Keys(customTags))
}

var (
	currencyRegex       = regexp.MustCompile(`^-?\$?(\d{1,3}(,\d{3})*|\d+)(\.\d{2})?$`)
	firebasePushIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{20}$`)
	fullWidthRegex      = regexp.MustCompile(`[^\x{0020}-\x{007E}\x{FF61}-\x{FF9F}\x{FFA0}-\x{FFDC}\x{FFE8}-\x{FFEE}0-9a-zA-Z]`)
	halfWidthRegex      = regexp.MustCompile(`[\x{0020}-\x{007E}\x{FF61}-\x{FF9F}\x{FFA0}-\x{FFDC}\x{FFE8}-\x{FFEE}0-9a-zA-Z]`)
	isinRegex           = regexp.MustCompile(`^[A-Z]{2}[0-9A-Z]{9}[0-9]$`)
	isrcRegex           = regexp.MustCompile(`^[A-Z]{2}[0-9A-Z]{3}\d{2}\d{5}$`)
	ibanRegex           = regexp.MustCompile(`^[A-Z]{2}\d{2}[A-Z0-9]{11,30}$`)
	magnetURIRegex      = regexp.MustCompile(`(?i)^magnet:\?xt(?:\.1)?=urn:[a-z0-9]+:[a-z0-9]{32,40}(&.*)?$`)
	mimeTypeRegex       = regexp.MustCompile(`(?i)^(application|audio|font|image|message|model|multipart|text|video)/[a-zA-Z0-9.\-+_]{1,100}(;\s*[a-zA-Z0-9.\-+_]+=("[^"]*"|[a-zA-Z0-9.\-+_]+))*$`)
	octalRegex          = regexp.MustCompile(`^(0o)?[0-7]+$`)
	passportRegex       = regexp.MustCompile(`(?i)^[A-Z0-9]{6,9}$`)
	postalCodeRegex     = regexp.MustCompile(`(?i)^[A-Z0-9][A-Z0-9\- ]{1,8}[A-Z0-9]$`)
	latLongRegex        = regexp.MustCompile(`^\(?\s*([-+]?\d+(\.\d+)?)\s*,\s*([-+]?\d+(\.\d+)?)\s*\)?$`)
)

// identityCards holds the identity card number formats by locale.
var identityCards = map[string]*regexp.Regexp{
	"ES":    regexp.MustCompile(`^[0-9X-Z][0-9]{7}[TRWAGMYFPDXBNJZSQVHLCKE]$`),
	"IN":    regexp.MustCompile(`^[2-9]\d{3}\s?\d{4}\s?\d{4}$`),
	"IT":    regexp.MustCompile(`^[A-Z]{2}\d{7}$`),
	"NO":    regexp.MustCompile(`^\d{11}$`),
	"he-IL": regexp.MustCompile(`^\d{9}$`),
	"zh-CN": regexp.MustCompile(`^\d{17}[\dX]$`),
	"zh-TW": regexp.MustCompile(`^[A-Z][12]\d{8}$`),
}

// hashLengths holds the hex digest length of the hash tag's algorithms.
var hashLengths = map[string]int{
	"sha1":   40,
	"crc32":  8,
	"crc32b": 8,
}

var hexRegex = regexp.MustCompile(`^[0-9a-fA-F]+$`)

func matchString(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		f := fl.Field()
		return f.Kind() == reflect.String && re.MatchString(f.String())
	}
}

func kindOf(kinds ...reflect.Kind) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return slices.Contains(kinds, fl.Field().Kind())
	}
}

func isInt(fl validator.FieldLevel) bool {
	f := fl.Field()
	switch {
	case f.CanInt(), f.CanUint():
		return true
	case f.CanFloat():
		v := f.Float()
		return v == math.Trunc(v) && !math.IsInf(v, 0)
	}
	return false
}

func isDate(fl validator.FieldLevel) bool {
	switch fl.Field().Interface().(type) {
	case time.Time, DateTime:
		return true
	}
	return false
}

var iso8601Layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006-01",
	"2006",
}

func isISO8601(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() != reflect.String {
		return false
	}
	for _, layout := range iso8601Layouts {
		if _, err := time.Parse(layout, f.String()); err == nil {
			return true
		}
	}
	return false
}

// stringValues returns the elements of a slice or array as strings.
func stringValues(f reflect.Value) ([]string, bool) {
	if f.Kind() != reflect.Slice && f.Kind() != reflect.Array {
		return nil, false
	}
	values := make([]string, f.Len())
	for i := range f.Len() {
		values[i] = fmt.Sprint(reflect.Indirect(f.Index(i)).Interface())
	}
	return values, true
}

func params(fl validator.FieldLevel) []string {
	return strings.Fields(fl.Param())
}

func arrayContains(fl validator.FieldLevel) bool {
	values, ok := stringValues(fl.Field())
	if !ok {
		return false
	}
	for _, p := range params(fl) {
		if !slices.Contains(values, p) {
			return false
		}
	}
	return true
}

func arrayExcludes(fl validator.FieldLevel) bool {
	values, ok := stringValues(fl.Field())
	if !ok {
		return false
	}
	for _, p := range params(fl) {
		if slices.Contains(values, p) {
			return false
		}
	}
	return true
}

func notIn(fl validator.FieldLevel) bool {
	return !slices.Contains(params(fl), fmt.Sprint(fl.Field().Interface()))
}

func byteLength(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() != reflect.String {
		return false
	}
	p := params(fl)
	if len(p) == 0 {
		return false
	}
	n := len(f.String())
	minimum, err := strconv.Atoi(p[0])
	if err != nil || n < minimum {
		return false
	}
	if len(p) > 1 {
		maximum, err := strconv.Atoi(p[1])
		if err != nil || n > maximum {
			return false
		}
	}
	return true
}

func divisibleBy(fl validator.FieldLevel) bool {
	d, err := strconv.ParseFloat(fl.Param(), 64)
	if err != nil || d == 0 {
		return false
	}
	var v float64
	f := fl.Field()
	switch {
	case f.CanInt():
		v = float64(f.Int())
	case f.CanUint():
		v = float64(f.Uint())
	case f.CanFloat():
		v = f.Float()
	case f.Kind() == reflect.String:
		if v, err = strconv.ParseFloat(f.String(), 64); err != nil {
			return false
		}
	default:
		return false
	}
	return math.Mod(v, d) == 0
}

// isPortNumber accepts integers and numeric strings in 1..65535.
func isPortNumber(fl validator.FieldLevel) bool {
	f := fl.Field()
	var (
		v   int64
		err error
	)
	switch {
	case f.CanInt():
		v = f.Int()
	case f.CanUint():
		v = int64(min(f.Uint(), math.MaxInt64))
	case f.Kind() == reflect.String:
		if v, err = strconv.ParseInt(f.String(), 10, 32); err != nil {
			return false
		}
	default:
		return false
	}
	return v >= 1 && v <= 65535
}

// isEAN validates an EAN-8 or EAN-13 check digit.
func isEAN(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if fl.Field().Kind() != reflect.String || (len(s) != 8 && len(s) != 13) {
		return false
	}
	sum := 0
	for i, r := range s[:len(s)-1] {
		if r < '0' || r > '9' {
			return false
		}
		weight := 1
		if (len(s) == 8) == (i%2 == 0) {
			weight = 3
		}
		sum += int(r-'0') * weight
	}
	check := s[len(s)-1]
	return check >= '0' && check <= '9' && int(check-'0') == (10-sum%10)%10
}

func isHash(fl validator.FieldLevel) bool {
	n, ok := hashLengths[fl.Param()]
	s := fl.Field().String()
	return ok && fl.Field().Kind() == reflect.String && len(s) == n && hexRegex.MatchString(s)
}

// isIBAN validates the format and the mod 97 checksum of an IBAN.
func isIBAN(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	s := strings.ToUpper(strings.ReplaceAll(fl.Field().String(), " ", ""))
	if !ibanRegex.MatchString(s) {
		return false
	}
	var digits strings.Builder
	for _, r := range s[4:] + s[:4] {
		if unicode.IsLetter(r) {
			digits.WriteString(strconv.Itoa(int(r-'A') + 10))
		} else {
			digits.WriteRune(r)
		}
	}
	n, ok := new(big.Int).SetString(digits.String(), 10)
	return ok && new(big.Int).Mod(n, big.NewInt(97)).Int64() == 1
}

// isISIN validates the format and the Luhn checksum of an ISIN.
func isISIN(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if fl.Field().Kind() != reflect.String || !isinRegex.MatchString(s) {
		return false
	}
	var digits strings.Builder
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			digits.WriteString(strconv.Itoa(int(r-'A') + 10))
		} else {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	sum := 0
	for i := len(d) - 1; i >= 0; i-- {
		n := int(d[i] - '0')
		if (len(d)-1-i)%2 == 1 {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		sum += n
	}
	return sum%10 == 0
}

func isIdentityCard(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() != reflect.String {
		return false
	}
	locale := fl.Param()
	if locale == "any" {
		for _, re := range identityCards {
			if re.MatchString(f.String()) {
				return true
			}
		}
		return false
	}
	re, ok := identityCards[locale]
	return ok && re.MatchString(f.String())
}

func isLatLong(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() != reflect.String {
		return false
	}
	m := latLongRegex.FindStringSubmatch(f.String())
	if m == nil {
		return false
	}
	lat, err1 := strconv.ParseFloat(m[1], 64)
	long, err2 := strconv.ParseFloat(m[3], 64)
	return err1 == nil && err2 == nil && math.Abs(lat) <= 90 && math.Abs(long) <= 180
}

// hasSurrogatePair reports whether the string holds a character outside
// the basic multilingual plane, which UTF-16 encodes as a surrogate pair.
func hasSurrogatePair(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() != reflect.String {
		return false
	}
	for _, r := range f.String() {
		if r > 0xFFFF {
			return true
		}
	}
	return false
}

func isVariableWidth(fl validator.FieldLevel) bool {
	f := fl.Field()
	return f.Kind() == reflect.String && fullWidthRegex.MatchString(f.String()) && halfWidthRegex.MatchString(f.String())
}
