package gen

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/modelql/compiler/load"
	"github.com/syssam/modelql/runtime"
)

func emit(t *testing.T, kind string, props map[string]any) string {
	t.Helper()
	code, err := DefaultValidators.Emit("input", "title", &load.Validator{Type: kind, Properties: props})
	require.NoError(t, err)
	if code == nil {
		return ""
	}
	return fmt.Sprintf("%#v", code)
}

func TestValidatorRegistry(t *testing.T) {
	t.Run("lookup", func(t *testing.T) {
		fn, err := DefaultValidators.Lookup("Length")
		require.NoError(t, err)
		assert.NotNil(t, fn)

		_, err = DefaultValidators.Lookup("NotAValidator")
		assert.True(t, IsUnknownValidatorError(err))
	})

	t.Run("kinds are sorted", func(t *testing.T) {
		kinds := DefaultValidators.Kinds()
		assert.IsIncreasing(t, kinds)
		assert.Len(t, kinds, 101)
		assert.Contains(t, kinds, "IsEmail")
		assert.Contains(t, kinds, "MinDate")
	})

	t.Run("with copies the registry", func(t *testing.T) {
		reg := DefaultValidators.With("IsShiny", tag("alpha"))
		_, err := reg.Lookup("IsShiny")
		assert.NoError(t, err)
		_, err = DefaultValidators.Lookup("IsShiny")
		assert.Error(t, err)
	})
}

func TestValidatorEmission(t *testing.T) {
	tests := []struct {
		kind  string
		props map[string]any
		want  string
	}{
		{"IsEmail", nil, `runtime.Tag("title", input.Title, "email")`},
		{"Length", map[string]any{"min": 1, "max": 120}, `runtime.Tag("title", input.Title, "min=1,max=120")`},
		{"Length", map[string]any{"min": 3}, `runtime.Tag("title", input.Title, "min=3")`},
		{"MinLength", map[string]any{"min": float64(2)}, `runtime.Tag("title", input.Title, "min=2")`},
		{"Max", map[string]any{"max": 9.5}, `runtime.Tag("title", input.Title, "lte=9.5")`},
		{"IsIn", map[string]any{"values": []any{"draft", "on hold", 3}}, `runtime.Tag("title", input.Title, "oneof=draft 'on hold' 3")`},
		{"IsEnum", map[string]any{"entity": map[string]any{"B": "b", "A": "a"}}, `runtime.Tag("title", input.Title, "oneof=a b")`},
		{"Contains", map[string]any{"seed": "a,b"}, `runtime.Tag("title", input.Title, "contains=a0x2Cb")`},
		{"Equals", map[string]any{"comparison": true}, `runtime.Tag("title", input.Title, "eq=true")`},
		{"IsAlpha", map[string]any{"locale": "de-DE"}, `runtime.Tag("title", input.Title, "alphaunicode")`},
		{"IsAlpha", map[string]any{"locale": "en-US"}, `runtime.Tag("title", input.Title, "alpha")`},
		{"IsUUID", map[string]any{"version": 4}, `runtime.Tag("title", input.Title, "uuid4")`},
		{"IsUUID", nil, `runtime.Tag("title", input.Title, "uuid")`},
		{"IsIP", map[string]any{"version": "6"}, `runtime.Tag("title", input.Title, "ipv6")`},
		{"IsHash", map[string]any{"algorithm": "crc32"}, `runtime.Tag("title", input.Title, "hash=crc32")`},
		{"IsHash", map[string]any{"algorithm": "md5"}, `runtime.Tag("title", input.Title, "md5")`},
		{"IsIdentityCard", nil, `runtime.Tag("title", input.Title, "identity_card=any")`},
		{"IsPostalCode", map[string]any{"locale": "DE"}, `runtime.Tag("title", input.Title, "postcode_iso3166_alpha2=DE")`},
		{"IsPostalCode", map[string]any{"locale": "any"}, `runtime.Tag("title", input.Title, "postal_code")`},
		{"IsByteLength", map[string]any{"min": 1, "max": 8}, `runtime.Tag("title", input.Title, "byte_length=1 8")`},
		{"IsDefined", nil, `runtime.Defined("title", input.Title)`},
		{"Matches", map[string]any{"pattern": `^\d+$`, "modifiers": "gi"}, `runtime.Matches("title", input.Title, "(?i)^\\d+$")`},
		{"MinDate", map[string]any{"date": "2024-01-01T00:00:00Z"}, `runtime.MinDate("title", input.Title, "2024-01-01T00:00:00Z")`},
		{"IsInstance", map[string]any{"targetType": "Address"}, `runtime.Instance("title", input.Title, "Address")`},
		{"Allow", nil, ""},
		{"IsOptional", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			assert.Equal(t, tt.want, emit(t, tt.kind, tt.props))
		})
	}
}

func TestValidatorEmissionErrors(t *testing.T) {
	tests := []struct {
		kind  string
		props map[string]any
		msg   string
	}{
		{"Length", nil, `missing property "min"`},
		{"Length", map[string]any{"min": "one"}, `property "min" must be a number, got string`},
		{"IsIn", map[string]any{"values": []any{}}, `property "values" must not be empty`},
		{"IsIn", map[string]any{"values": "a"}, `property "values" must be a list, got string`},
		{"IsHash", map[string]any{"algorithm": "whirlpool"}, `unsupported algorithm "whirlpool"`},
		{"IsUUID", map[string]any{"version": 7}, `unsupported version "7"`},
		{"Matches", map[string]any{"pattern": "x", "modifiers": "z"}, `unsupported modifier 'z'`},
		{"MaxDate", map[string]any{"date": "tomorrow"}, `property "date" must be an RFC 3339 date`},
		{"IsInstance", map[string]any{"targetType": 1}, `property "targetType" must be a string, got int`},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			_, err := DefaultValidators.Emit("input", "title", &load.Validator{Type: tt.kind, Properties: tt.props})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidValidator)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

// Every tag the registry emits must be known to the runtime validator.
func TestValidatorTagsAreRegistered(t *testing.T) {
	props := map[string]any{
		"values":     []any{"a", "b c"},
		"entity":     map[string]any{"A": "a"},
		"min":        1,
		"max":        3,
		"num":        2,
		"seed":       "x",
		"comparison": "x",
		"algorithm":  "sha1",
		"locale":     "en-US",
		"pattern":    "^x$",
		"date":       "2024-01-01T00:00:00Z",
		"targetType": "Book",
	}
	tagArg := regexp.MustCompile(`^runtime\.Tag\("title", input\.Title, "(.*)"\)$`)
	for _, kind := range DefaultValidators.Kinds() {
		code, err := DefaultValidators.Emit("input", "title", &load.Validator{Type: kind, Properties: props})
		require.NoError(t, err, kind)
		if code == nil {
			continue
		}
		m := tagArg.FindStringSubmatch(fmt.Sprintf("%#v", code.(*jen.Statement)))
		if m == nil {
			continue
		}
		var value any = "x"
		if strings.HasPrefix(kind, "Array") {
			value = []string{"x"}
		}
		assert.NotPanics(t, func() { _ = runtime.Validator().Var(value, m[1]) }, "%s: %s", kind, m[1])
	}
}
