package subtoken

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_TableTests(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Token
	}{
		{
			name: "service with date",
			raw:  "Viki Pass|2024-01-01",
			want: Token{Service: "Viki Pass", RawDate: "2024-01-01", Raw: "Viki Pass|2024-01-01"},
		},
		{
			name: "service with date and override",
			raw:  "Kocowa+|2024-03-15|OVERRIDE",
			want: Token{Service: "Kocowa+", RawDate: "2024-03-15", Override: true, Raw: "Kocowa+|2024-03-15|OVERRIDE"},
		},
		{
			name: "bare service name",
			raw:  "IQIYI",
			want: Token{Service: "IQIYI", Raw: "IQIYI"},
		},
		{
			name: "padded parts",
			raw:  " WeTV | 2024-05-01 ",
			want: Token{Service: "WeTV", RawDate: "2024-05-01", Raw: " WeTV | 2024-05-01 "},
		},
		{
			name: "third part is not override",
			raw:  "Viki Pass|2024-01-01|extra",
			want: Token{Service: "Viki Pass", RawDate: "2024-01-01", Raw: "Viki Pass|2024-01-01|extra"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.raw))
		})
	}
}

func TestServiceKey(t *testing.T) {
	assert.Equal(t, "viki pass", ServiceKey("Viki Pass|2024-01-01"))
	assert.Equal(t, "kocowa+", ServiceKey("  Kocowa+  "))
	assert.Equal(t, "", ServiceKey(""))
}

func TestNormalize_LegacyEncodings(t *testing.T) {
	want := []string{"A", "B"}

	tests := []struct {
		name string
		got  []string
	}{
		{name: "real list", got: NormalizeList([]string{"A", "B"})},
		{name: "semicolon string", got: NormalizeString("A;B")},
		{name: "comma string", got: NormalizeString("A,B")},
		{name: "plus string", got: NormalizeString("A+B")},
		{name: "braced semicolon string", got: NormalizeString("{A;B}")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, want, tt.got)
		})
	}
}

func TestNormalize_DelimiterPrecedence(t *testing.T) {
	// ";" выигрывает у "," и "+": строка режется только по нему.
	got := NormalizeString("A,1;B+2")
	assert.Equal(t, []string{"A,1", "B+2"}, got)
}

func TestNormalizeList_DropsGarbage(t *testing.T) {
	got := NormalizeList([]string{" Viki Pass|2024-01-01 ", "", `"Kocowa+"`, "null", "NULL", `""`})
	assert.Equal(t, []string{"Viki Pass|2024-01-01", "Kocowa+"}, got)
}

func TestNormalizeString_Empty(t *testing.T) {
	assert.Empty(t, NormalizeString(""))
	assert.Empty(t, NormalizeString("{}"))
}

func TestFromRaw(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, FromRaw(`["A","B"]`))
	assert.Equal(t, []string{"A", "B"}, FromRaw("A;B"))
	assert.Equal(t, []string{"Viki Pass|2024-01-01"}, FromRaw("Viki Pass|2024-01-01"))
}

func TestList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		data string
		want List
	}{
		{name: "array", data: `["A","B"]`, want: List{"A", "B"}},
		{name: "delimited string", data: `"A;B"`, want: List{"A", "B"}},
		{name: "braced string", data: `"{A;B}"`, want: List{"A", "B"}},
		{name: "null", data: `null`, want: nil},
		{name: "unexpected shape", data: `42`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l List
			require.NoError(t, json.Unmarshal([]byte(tt.data), &l))
			assert.Equal(t, tt.want, l)
		})
	}
}
