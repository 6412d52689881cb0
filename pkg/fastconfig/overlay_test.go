package fastconfig_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251214-go-pkg-fastconfig/pkg/fastconfig"
)

func TestLoad_EnvOverlay(t *testing.T) {
	path := fixture("basic_type.toml")

	t.Run("lookup function", func(t *testing.T) {
		got, err := basicSchema.Load(path,
			fastconfig.WithEnvPrefix("FCTEST_"),
			fastconfig.WithEnvLookup(envMap(map[string]string{
				"FCTEST_SECTION_INT":        "7",
				"FCTEST_STR":                "from env",
				"FCTEST_SECTION_LIST_VALUE": "[4, 5]",
				"FCTEST_F":                  "",
			})),
		)
		require.NoError(t, err)
		assert.Equal(t, 7, got.C)
		assert.Equal(t, "from env", got.D)
		assert.Equal(t, []int{4, 5}, got.E)
		assert.Zero(t, got.F)
	})

	t.Run("process environment", func(t *testing.T) {
		t.Setenv("FCTEST_FLAG", "false")
		t.Setenv("FCTEST_SECTION_DATE_DATE", "2021-03-04")

		got, err := basicSchema.Load(path, fastconfig.WithEnvPrefix("FCTEST_"))
		require.NoError(t, err)
		assert.False(t, got.B)
		assert.Equal(t, fastconfig.LocalDate{Year: 2021, Month: 3, Day: 4}, got.G)
	})

	t.Run("type checked", func(t *testing.T) {
		_, err := basicSchema.Load(path,
			fastconfig.WithEnvPrefix("FCTEST_"),
			fastconfig.WithEnvLookup(envMap(map[string]string{"FCTEST_SECTION_INT": "many"})),
		)
		require.ErrorIs(t, err, fastconfig.ErrUnexpectedValue)
	})

	t.Run("disabled without prefix", func(t *testing.T) {
		got, err := basicSchema.Load(path,
			fastconfig.WithEnvLookup(envMap(map[string]string{"SECTION_INT": "7"})),
		)
		require.NoError(t, err)
		assert.Equal(t, 42, got.C)
	})
}

func TestLoad_CommandOverlay(t *testing.T) {
	path := fixture("basic_type.toml")

	run := func(t *testing.T, args []string, opts ...fastconfig.Option) *BasicTypes {
		t.Helper()

		var got *BasicTypes
		cmd := &cli.Command{
			Name: "app",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "section-int"},
				&cli.StringFlag{Name: "str", Value: "flag default"},
				&cli.BoolFlag{Name: "flag"},
			},
			Action: func(_ context.Context, cmd *cli.Command) error {
				var err error
				got, err = basicSchema.Load(path, append(opts, fastconfig.WithCommand(cmd))...)
				return err
			},
		}
		require.NoError(t, cmd.Run(context.Background(), append([]string{"app"}, args...)))

		return got
	}

	t.Run("explicit flags override document", func(t *testing.T) {
		got := run(t, []string{"--section-int", "9", "--flag=false"})
		assert.Equal(t, 9, got.C)
		assert.False(t, got.B)
	})

	t.Run("unset flags keep document values", func(t *testing.T) {
		got := run(t, nil)
		assert.Equal(t, 42, got.C)
		assert.Equal(t, "str", got.D)
		assert.True(t, got.B)
	})

	t.Run("flags override env", func(t *testing.T) {
		got := run(t, []string{"--section-int", "9"},
			fastconfig.WithEnvPrefix("FCTEST_"),
			fastconfig.WithEnvLookup(envMap(map[string]string{"FCTEST_SECTION_INT": "7", "FCTEST_STR": "env"})),
		)
		assert.Equal(t, 9, got.C)
		assert.Equal(t, "env", got.D)
	})
}

func TestLoad_TemplateExpansion(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.toml", `str = "${FCTEST_NAME:-fallback}"
[section]
int = ${FCTEST_PORT:-1}
`)
	lookup := fastconfig.WithEnvLookup(envMap(map[string]string{"FCTEST_PORT": "8080"}))

	got, err := basicSchema.Load(path, fastconfig.WithTemplateExpansion(), lookup)
	require.NoError(t, err)
	assert.Equal(t, "fallback", got.D)
	assert.Equal(t, 8080, got.C)

	// 默认不展开
	raw := writeFile(t, dir, "raw.toml", `str = "${FCTEST_NAME:-fallback}"`)
	got, err = basicSchema.Load(raw, lookup)
	require.NoError(t, err)
	assert.Equal(t, "${FCTEST_NAME:-fallback}", got.D)

	required := writeFile(t, dir, "required.toml", `str = "${FCTEST_MISSING?must be set}"`)
	_, err = basicSchema.Load(required, fastconfig.WithTemplateExpansion(), lookup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be set")
}

func TestSchema_Overlay(t *testing.T) {
	doc := basicSchema.Overlay(nil,
		fastconfig.WithEnvPrefix("FCTEST_"),
		fastconfig.WithEnvLookup(envMap(map[string]string{"FCTEST_SECTION_INT": "3"})),
	)
	assert.Equal(t, fastconfig.Document{"section": map[string]any{"int": int64(3)}}, doc)

	got, err := basicSchema.Build(doc)
	require.NoError(t, err)
	assert.Equal(t, 3, got.C)
	assert.Equal(t, "default", got.D)
}
