package fastconfig_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251214-go-pkg-fastconfig/pkg/fastconfig"
)

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path    string
		want    fastconfig.Format
		wantErr bool
	}{
		{"config.json", fastconfig.FormatJSON, false},
		{"dir/config.toml", fastconfig.FormatTOML, false},
		{"config.yaml", "", true},
		{"config.JSON", "", true},
		{"config", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := fastconfig.FormatOf(tt.path)
			if tt.wantErr {
				require.ErrorIs(t, err, fastconfig.ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadDocument(t *testing.T) {
	t.Run("non dict json", func(t *testing.T) {
		doc, err := fastconfig.LoadDocument(fixture("internals/non_dict.json"))
		require.NoError(t, err)
		assert.Equal(t, fastconfig.Document{"content": []any{int64(1), int64(2), int64(3)}}, doc)
	})

	t.Run("missing file checked before extension", func(t *testing.T) {
		_, err := fastconfig.LoadDocument("missing.yaml")
		var nfe *fastconfig.NotFoundError
		require.ErrorAs(t, err, &nfe)
		assert.Equal(t, "missing.yaml", nfe.Path)
	})

	t.Run("toml temporal values", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "t.toml", `
odt = 1979-05-27T07:32:00Z
ldt = 1979-05-27T07:32:00
ld = 1979-05-27
lt = 07:32:00
`)
		doc, err := fastconfig.LoadDocument(path)
		require.NoError(t, err)

		want := time.Date(1979, 5, 27, 7, 32, 0, 0, time.UTC)
		assert.True(t, want.Equal(doc["odt"].(time.Time)))
		assert.True(t, want.Equal(doc["ldt"].(time.Time)))
		assert.Equal(t, fastconfig.LocalDate{Year: 1979, Month: 5, Day: 27}, doc["ld"])
		assert.Equal(t, fastconfig.LocalTime{Hour: 7, Minute: 32}, doc["lt"])
	})

	t.Run("empty toml", func(t *testing.T) {
		doc, err := fastconfig.LoadDocument(writeFile(t, t.TempDir(), "empty.toml", ""))
		require.NoError(t, err)
		assert.Empty(t, doc)
	})
}

func TestParseDocument_JSONTrailingData(t *testing.T) {
	_, err := fastconfig.ParseDocument(fastconfig.FormatJSON, []byte(`{"a": 1} {"b": 2}`))
	require.ErrorIs(t, err, fastconfig.ErrInvalidConfig)

	_, err = fastconfig.ParseDocument(fastconfig.FormatJSON, []byte(`{"a": 1}`+"\n"))
	require.NoError(t, err)

	_, err = fastconfig.ParseDocument(fastconfig.FormatYAML, []byte(`a: 1`))
	require.ErrorIs(t, err, fastconfig.ErrInvalidConfig)
}

func TestEncode(t *testing.T) {
	doc := fastconfig.Document{
		"name":    "app",
		"missing": nil,
		"server":  map[string]any{"port": 8080},
	}

	data, err := fastconfig.Encode(doc, fastconfig.FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name": "app", "missing": null, "server": {"port": 8080}}`, string(data))

	data, err = fastconfig.Encode(doc, fastconfig.FormatTOML)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "missing")
	assert.Contains(t, string(data), "[server]")

	data, err = fastconfig.Encode(doc, fastconfig.FormatYAML)
	require.NoError(t, err)
	assert.YAMLEq(t, "name: app\nmissing: null\nserver:\n  port: 8080\n", string(data))

	_, err = fastconfig.Encode(doc, fastconfig.Format("xml"))
	require.ErrorIs(t, err, fastconfig.ErrInvalidConfig)

	// 整数值的浮点数保留小数点
	data, err = fastconfig.Encode(fastconfig.Document{"ratio": 2.0, "half": 0.5, "list": []any{1.0, 3}}, fastconfig.FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"ratio": 2.0`)
	assert.Contains(t, string(data), `"half": 0.5`)
	doc, err = fastconfig.ParseDocument(fastconfig.FormatJSON, data)
	require.NoError(t, err)
	assert.Equal(t, fastconfig.Document{"ratio": 2.0, "half": 0.5, "list": []any{1.0, int64(3)}}, doc)
}

func TestToMap(t *testing.T) {
	seven := 7
	doc := complexSchema.ToMap(&ComplexTypes{A: 1, B: "b", C: &seven, D: nil, E: nil, F: 2.5})
	assert.Equal(t, fastconfig.Document{
		"a": 1,
		"b": "b",
		"section": map[string]any{
			"optional_int": 7,
			"dict":         map[string]map[string]int(nil),
		},
		"e":       nil,
		"numeric": 2.5,
	}, doc)

	v, ok := fastconfig.Lookup(doc, []string{"section", "optional_int"})
	require.True(t, ok)
	assert.Equal(t, 7, v)

	assert.Empty(t, complexSchema.ToMap(nil))
}

func TestFieldMap(t *testing.T) {
	got := basicSchema.FieldMap(expectedBasic())
	assert.Equal(t, 42, got["C"])
	assert.Equal(t, "str", got["D"])
	assert.Len(t, got, 7)
}

func TestLookup(t *testing.T) {
	doc := map[string]any{
		"a":     map[string]any{"b": map[string]int{"c": 1}},
		"typed": map[string]string{"k": "v"},
	}

	v, ok := fastconfig.Lookup(doc, []string{"a", "b", "c"})
	require.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = fastconfig.Lookup(doc, []string{"typed", "k"})
	require.True(t, ok)
	assert.Equal(t, "v", v)

	_, ok = fastconfig.Lookup(doc, []string{"a", "x"})
	assert.False(t, ok)
	_, ok = fastconfig.Lookup(doc, []string{"a", "b", "c", "d"})
	assert.False(t, ok)
	_, ok = fastconfig.Lookup(doc, nil)
	assert.False(t, ok)
}
