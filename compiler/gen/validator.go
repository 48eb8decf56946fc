package gen

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dave/jennifer/jen"
	"github.com/goccy/go-json"

	"github.com/syssam/modelql/compiler/load"
)

// RuntimePackage is the import path of the package generated code calls into.
const RuntimePackage = "github.com/syssam/modelql/runtime"

// ValidatorFunc emits the validation call for one validator attached to
// field of target. The returned code is an expression of type error, or nil
// when the kind needs no runtime check.
type ValidatorFunc func(target, field string, v *load.Validator) (jen.Code, error)

// ValidatorRegistry maps validator kinds to their emission rule. A registry
// is never mutated after construction and is safe for concurrent use.
type ValidatorRegistry struct {
	funcs map[string]ValidatorFunc
}

// DefaultValidators holds the built-in validator kinds.
var DefaultValidators = &ValidatorRegistry{funcs: builtinValidators()}

// Lookup returns the emission rule of a kind.
func (r *ValidatorRegistry) Lookup(kind string) (ValidatorFunc, error) {
	fn, ok := r.funcs[kind]
	if !ok {
		return nil, NewUnknownValidatorError(kind)
	}
	return fn, nil
}

// Emit emits the validation call of v for field of target.
func (r *ValidatorRegistry) Emit(target, field string, v *load.Validator) (jen.Code, error) {
	fn, err := r.Lookup(v.Type)
	if err != nil {
		return nil, err
	}
	return fn(target, field, v)
}

// Kinds returns the registered kinds in sorted order.
func (r *ValidatorRegistry) Kinds() []string {
	return slices.Sorted(maps.Keys(r.funcs))
}

// With returns a copy of the registry with kind bound to fn.
func (r *ValidatorRegistry) With(kind string, fn ValidatorFunc) *ValidatorRegistry {
	funcs := maps.Clone(r.funcs)
	funcs[kind] = fn
	return &ValidatorRegistry{funcs: funcs}
}

func builtinValidators() map[string]ValidatorFunc {
	return map[string]ValidatorFunc{
		"Allow":             none,
		"IsOptional":        none,
		"ArrayContains":     tagf(func(p params) (string, error) { return p.listTag("array_contains", "values") }),
		"ArrayNotContains":  tagf(func(p params) (string, error) { return p.listTag("array_excludes", "values") }),
		"ArrayMaxSize":      tagf(func(p params) (string, error) { return p.numTag("max", "max") }),
		"ArrayMinSize":      tagf(func(p params) (string, error) { return p.numTag("min", "min") }),
		"ArrayNotEmpty":     tag("min=1"),
		"ArrayUnique":       tag("unique"),
		"Contains":          tagf(func(p params) (string, error) { return p.strTag("contains", "seed") }),
		"NotContains":       tagf(func(p params) (string, error) { return p.strTag("excludes", "seed") }),
		"Equals":            tagf(func(p params) (string, error) { return p.scalarTag("eq", "comparison") }),
		"NotEquals":         tagf(func(p params) (string, error) { return p.scalarTag("ne", "comparison") }),
		"IsAlpha":           tagf(alphaTag("alpha", "alphaunicode")),
		"IsAlphanumeric":    tagf(alphaTag("alphanum", "alphanumunicode")),
		"IsArray":           tag("is_array"),
		"IsAscii":           tag("ascii"),
		"IsBIC":             tag("bic"),
		"IsBase32":          tag("base32"),
		"IsBase64":          tag("base64"),
		"IsBoolean":         tag("is_bool"),
		"IsBooleanString":   tag("boolean"),
		"IsBtcAddress":      tag("btc_addr"),
		"IsByteLength":      tagf(byteLengthTag),
		"IsCreditCard":      tag("credit_card"),
		"IsCurrency":        tag("currency"),
		"IsDataURI":         tag("datauri"),
		"IsDate":            tag("is_date"),
		"IsDateString":      tag("iso8601"),
		"IsDecimal":         tag("numeric"),
		"IsDefined":         defined,
		"IsDivisibleBy":     tagf(func(p params) (string, error) { return p.numTag("divisible_by", "num") }),
		"IsEAN":             tag("ean"),
		"IsEmail":           tag("email"),
		"IsEmpty":           tag("isdefault"),
		"IsEnum":            tagf(func(p params) (string, error) { return p.listTag("oneof", "entity") }),
		"IsEthereumAddress": tag("eth_addr"),
		"IsFQDN":            tag("fqdn"),
		"IsFirebasePushId":  tag("firebase_push_id"),
		"IsFullWidth":       tag("full_width"),
		"IsHSLColor":        tag("hsl"),
		"IsHalfWidth":       tag("half_width"),
		"IsHash":            tagf(hashTag),
		"IsHexColor":        tag("hexcolor"),
		"IsHexadecimal":     tag("hexadecimal"),
		"IsIBAN":            tag("iban"),
		"IsIP":              tagf(versionTag("version", "ip", map[string]string{"4": "ipv4", "6": "ipv6"})),
		"IsISBN":            tagf(versionTag("version", "isbn", map[string]string{"10": "isbn10", "13": "isbn13"})),
		"IsISIN":            tag("isin"),
		"IsISO31661Alpha2":  tag("iso3166_1_alpha2"),
		"IsISO31661Alpha3":  tag("iso3166_1_alpha3"),
		"IsISO8601":         tag("iso8601"),
		"IsISRC":            tag("isrc"),
		"IsISSN":            tag("issn"),
		"IsIdentityCard":    tagf(identityCardTag),
		"IsIn":              tagf(func(p params) (string, error) { return p.listTag("oneof", "values") }),
		"IsNotIn":           tagf(func(p params) (string, error) { return p.listTag("not_in", "values") }),
		"IsInstance":        call("Instance", func(p params) ([]jen.Code, error) { return p.strArg("targetType") }),
		"IsInt":             tag("is_int"),
		"IsJSON":            tag("json"),
		"IsJWT":             tag("jwt"),
		"IsLatLong":         tag("latlong"),
		"IsLatitude":        tag("latitude"),
		"IsLocale":          tag("bcp47_language_tag"),
		"IsLongitude":       tag("longitude"),
		"IsLowercase":       tag("lowercase"),
		"IsMACAddress":      tag("mac"),
		"IsMagnetURI":       tag("magnet_uri"),
		"IsMilitaryTime":    tag("datetime=15:04"),
		"IsMimeType":        tag("mime_type"),
		"IsMobilePhone":     tag("e164"),
		"IsMongoId":         tag("mongodb"),
		"IsMultibyte":       tag("multibyte"),
		"IsNegative":        tag("lt=0"),
		"IsNotEmpty":        tag("required"),
		"IsNotEmptyObject":  tag("required"),
		"IsNumber":          tag("number"),
		"IsNumberString":    tag("numeric"),
		"IsObject":          tag("is_object"),
		"IsOctal":           tag("octal"),
		"IsPassportNumber":  tag("passport"),
		"IsPhoneNumber":     tag("e164"),
		"IsPort":            tag("port_number"),
		"IsPositive":        tag("gt=0"),
		"IsPostalCode":      tagf(postalCodeTag),
		"IsRFC3339":         tag("datetime=2006-01-02T15:04:05Z07:00"),
		"IsRgbColor":        tag("rgb"),
		"IsSemVer":          tag("semver"),
		"IsString":          tag("is_string"),
		"IsSurrogatePair":   tag("surrogate_pair"),
		"IsUUID":            tagf(versionTag("version", "uuid", map[string]string{"3": "uuid3", "4": "uuid4", "5": "uuid5", "all": "uuid"})),
		"IsUppercase":       tag("uppercase"),
		"IsUrl":             tag("url"),
		"IsVariableWidth":   tag("variable_width"),
		"Length":            tagf(lengthTag),
		"Matches":           call("Matches", matchesArgs),
		"Max":               tagf(func(p params) (string, error) { return p.numTag("lte", "max") }),
		"Min":               tagf(func(p params) (string, error) { return p.numTag("gte", "min") }),
		"MaxLength":         tagf(func(p params) (string, error) { return p.numTag("max", "max") }),
		"MinLength":         tagf(func(p params) (string, error) { return p.numTag("min", "min") }),
		"MaxDate":           call("MaxDate", func(p params) ([]jen.Code, error) { return p.dateArg("date") }),
		"MinDate":           call("MinDate", func(p params) ([]jen.Code, error) { return p.dateArg("date") }),
	}
}

// =============================================================================
// Emission rules
// =============================================================================

func none(string, string, *load.Validator) (jen.Code, error) { return nil, nil }

// accessor returns the expression reading field from target.
func accessor(target, field string) *jen.Statement {
	return jen.Id(target).Dot(GoFieldName(field))
}

// tag emits runtime.Tag with a fixed validator tag.
func tag(t string) ValidatorFunc {
	return func(target, field string, _ *load.Validator) (jen.Code, error) {
		return jen.Qual(RuntimePackage, "Tag").Call(jen.Lit(field), accessor(target, field), jen.Lit(t)), nil
	}
}

// tagf emits runtime.Tag with a tag built from the validator properties.
func tagf(build func(params) (string, error)) ValidatorFunc {
	return func(target, field string, v *load.Validator) (jen.Code, error) {
		t, err := build(params{v: v, field: field})
		if err != nil {
			return nil, err
		}
		return tag(t)(target, field, v)
	}
}

// call emits runtime.<name>(field, value, args...).
func call(name string, build func(params) ([]jen.Code, error)) ValidatorFunc {
	return func(target, field string, v *load.Validator) (jen.Code, error) {
		args, err := build(params{v: v, field: field})
		if err != nil {
			return nil, err
		}
		return jen.Qual(RuntimePackage, name).Call(append([]jen.Code{jen.Lit(field), accessor(target, field)}, args...)...), nil
	}
}

func defined(target, field string, _ *load.Validator) (jen.Code, error) {
	return jen.Qual(RuntimePackage, "Defined").Call(jen.Lit(field), accessor(target, field)), nil
}

func alphaTag(ascii, unicode string) func(params) (string, error) {
	return func(p params) (string, error) {
		locale, ok, err := p.optStr("locale")
		if err != nil {
			return "", err
		}
		if ok && !strings.HasPrefix(locale, "en") {
			return unicode, nil
		}
		return ascii, nil
	}
}

func versionTag(key, plain string, versions map[string]string) func(params) (string, error) {
	return func(p params) (string, error) {
		version, ok, err := p.optScalar(key)
		if err != nil || !ok {
			return plain, err
		}
		t, ok := versions[version]
		if !ok {
			return "", p.errorf("unsupported %s %q", key, version)
		}
		return t, nil
	}
}

var hashTags = map[string]string{
	"md4": "md4", "md5": "md5", "sha256": "sha256", "sha384": "sha384", "sha512": "sha512",
	"ripemd128": "ripemd128", "ripemd160": "ripemd160",
	"tiger128": "tiger128", "tiger160": "tiger160", "tiger192": "tiger192",
	"sha1": "hash=sha1", "crc32": "hash=crc32", "crc32b": "hash=crc32b",
}

func hashTag(p params) (string, error) {
	alg, err := p.str("algorithm")
	if err != nil {
		return "", err
	}
	t, ok := hashTags[alg]
	if !ok {
		return "", p.errorf("unsupported algorithm %q", alg)
	}
	return t, nil
}

func identityCardTag(p params) (string, error) {
	locale, ok, err := p.optStr("locale")
	if err != nil {
		return "", err
	}
	if !ok {
		locale = "any"
	}
	return "identity_card=" + escapeParam(locale), nil
}

func postalCodeTag(p params) (string, error) {
	locale, ok, err := p.optStr("locale")
	if err != nil {
		return "", err
	}
	if !ok || locale == "any" {
		return "postal_code", nil
	}
	return "postcode_iso3166_alpha2=" + escapeParam(locale), nil
}

func byteLengthTag(p params) (string, error) {
	minimum, err := p.num("min")
	if err != nil {
		return "", err
	}
	maximum, ok, err := p.optNum("max")
	if err != nil {
		return "", err
	}
	if ok {
		return "byte_length=" + minimum + " " + maximum, nil
	}
	return "byte_length=" + minimum, nil
}

func lengthTag(p params) (string, error) {
	minimum, err := p.num("min")
	if err != nil {
		return "", err
	}
	maximum, ok, err := p.optNum("max")
	if err != nil {
		return "", err
	}
	if ok {
		return "min=" + minimum + ",max=" + maximum, nil
	}
	return "min=" + minimum, nil
}

func matchesArgs(p params) ([]jen.Code, error) {
	pattern, err := p.str("pattern")
	if err != nil {
		return nil, err
	}
	modifiers, ok, err := p.optStr("modifiers")
	if err != nil {
		return nil, err
	}
	if ok && modifiers != "" {
		var flags strings.Builder
		for _, m := range modifiers {
			switch m {
			case 'i', 'm', 's':
				flags.WriteRune(m)
			case 'g', 'u', 'y':
				// No Go equivalent; matching is already global and unicode aware.
			default:
				return nil, p.errorf("unsupported modifier %q", m)
			}
		}
		if flags.Len() > 0 {
			pattern = "(?" + flags.String() + ")" + pattern
		}
	}
	return []jen.Code{jen.Lit(pattern)}, nil
}

// =============================================================================
// Properties bag access
// =============================================================================

type params struct {
	v     *load.Validator
	field string
}

func (p params) errorf(format string, args ...any) error {
	return NewValidatorError(p.v.Type, p.field, fmt.Sprintf(format, args...), nil)
}

func (p params) lookup(key string) (any, bool) {
	v, ok := p.v.Properties[key]
	return v, ok && v != nil
}

func (p params) str(key string) (string, error) {
	s, ok, err := p.optStr(key)
	if err == nil && !ok {
		err = p.errorf("missing property %q", key)
	}
	return s, err
}

func (p params) optStr(key string) (string, bool, error) {
	v, ok := p.lookup(key)
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", false, p.errorf("property %q must be a string, got %T", key, v)
	}
	return s, true, nil
}

func (p params) num(key string) (string, error) {
	n, ok, err := p.optNum(key)
	if err == nil && !ok {
		err = p.errorf("missing property %q", key)
	}
	return n, err
}

func (p params) optNum(key string) (string, bool, error) {
	v, ok := p.lookup(key)
	if !ok {
		return "", false, nil
	}
	n, ok := formatNumber(v)
	if !ok {
		return "", false, p.errorf("property %q must be a number, got %T", key, v)
	}
	return n, true, nil
}

// optScalar reads a string or number property as text.
func (p params) optScalar(key string) (string, bool, error) {
	v, ok := p.lookup(key)
	if !ok {
		return "", false, nil
	}
	if s, ok := v.(string); ok {
		return s, true, nil
	}
	if n, ok := formatNumber(v); ok {
		return n, true, nil
	}
	if b, ok := v.(bool); ok {
		return strconv.FormatBool(b), true, nil
	}
	return "", false, p.errorf("property %q must be a scalar, got %T", key, v)
}

func (p params) list(key string) ([]string, error) {
	v, ok := p.lookup(key)
	if !ok {
		return nil, p.errorf("missing property %q", key)
	}
	var items []any
	switch v := v.(type) {
	case []any:
		items = v
	case []string:
		for _, s := range v {
			items = append(items, s)
		}
	case map[string]any:
		// An enum object: its values are the allowed ones.
		for _, k := range slices.Sorted(maps.Keys(v)) {
			items = append(items, v[k])
		}
	default:
		return nil, p.errorf("property %q must be a list, got %T", key, v)
	}
	values := make([]string, 0, len(items))
	for _, item := range items {
		switch item := item.(type) {
		case string:
			values = append(values, item)
		case bool:
			values = append(values, strconv.FormatBool(item))
		default:
			n, ok := formatNumber(item)
			if !ok {
				b, err := json.Marshal(item)
				if err != nil {
					return nil, NewValidatorError(p.v.Type, p.field, fmt.Sprintf("property %q holds an unsupported value", key), err)
				}
				n = string(b)
			}
			values = append(values, n)
		}
	}
	return values, nil
}

func (p params) numTag(tag, key string) (string, error) {
	n, err := p.num(key)
	if err != nil {
		return "", err
	}
	return tag + "=" + n, nil
}

func (p params) strTag(tag, key string) (string, error) {
	s, err := p.str(key)
	if err != nil {
		return "", err
	}
	return tag + "=" + escapeParam(s), nil
}

func (p params) scalarTag(tag, key string) (string, error) {
	s, ok, err := p.optScalar(key)
	if err == nil && !ok {
		err = p.errorf("missing property %q", key)
	}
	if err != nil {
		return "", err
	}
	return tag + "=" + escapeParam(s), nil
}

// listTag renders a space separated parameter list; values holding spaces
// are single quoted as the oneof tag expects.
func (p params) listTag(tag, key string) (string, error) {
	values, err := p.list(key)
	if err != nil {
		return "", err
	}
	if len(values) == 0 {
		return "", p.errorf("property %q must not be empty", key)
	}
	quoted := make([]string, len(values))
	for i, v := range values {
		v = escapeParam(v)
		if strings.Contains(v, " ") {
			v = "'" + v + "'"
		}
		quoted[i] = v
	}
	return tag + "=" + strings.Join(quoted, " "), nil
}

func (p params) strArg(key string) ([]jen.Code, error) {
	s, err := p.str(key)
	if err != nil {
		return nil, err
	}
	return []jen.Code{jen.Lit(s)}, nil
}

func (p params) dateArg(key string) ([]jen.Code, error) {
	s, err := p.str(key)
	if err != nil {
		return nil, err
	}
	if _, err := time.Parse(time.RFC3339, s); err != nil {
		return nil, NewValidatorError(p.v.Type, p.field, fmt.Sprintf("property %q must be an RFC 3339 date", key), err)
	}
	return []jen.Code{jen.Lit(s)}, nil
}

func formatNumber(v any) (string, bool) {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n), true
	case int64:
		return strconv.FormatInt(n, 10), true
	case uint64:
		return strconv.FormatUint(n, 10), true
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64), true
	case json.Number:
		return n.String(), true
	default:
		return "", false
	}
}

// escapeParam encodes the characters the validator tag syntax reserves.
func escapeParam(s string) string {
	return strings.NewReplacer(",", "0x2C", "|", "0x7C").Replace(s)
}
