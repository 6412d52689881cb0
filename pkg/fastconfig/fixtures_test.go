package fastconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251214-go-pkg-fastconfig/pkg/fastconfig"
)

// BasicTypes 覆盖基本类型、嵌套 key 与日期转换。
type BasicTypes struct {
	A map[string]string    `fc:"table"`
	B bool                 `fc:"flag" default:"false"`
	C int                  `fc:"section.int" default:"0"`
	D string               `fc:"str" default:"default"`
	E []int                `fc:"section.list.value"`
	F float64              `json:"f" default:"0"`
	G fastconfig.LocalDate `fc:"section.date.date"`
}

var basicSchema = fastconfig.MustSchema[BasicTypes](
	fastconfig.WithField("A", fastconfig.DefaultFunc(func() any { return map[string]string{} })),
	fastconfig.WithField("E", fastconfig.DefaultFunc(func() any { return []int{} })),
	fastconfig.WithField("G", fastconfig.Default(fastconfig.LocalDate{Year: 2000, Month: 1, Day: 1})),
)

var numeric = fastconfig.Union(fastconfig.Int(), fastconfig.Float())

// ComplexTypes 覆盖 Union、Optional 与嵌套映射。
type ComplexTypes struct {
	A any                       `fc:"a"`
	B any                       `fc:"b"`
	C *int                      `fc:"section.optional_int"`
	D map[string]map[string]int `fc:"section.dict"`
	E any                       `fc:"e"`
	F any                       `fc:"numeric"`
}

var complexSchema = fastconfig.MustSchema[ComplexTypes](
	fastconfig.WithField("A", fastconfig.As(numeric), fastconfig.Default(0)),
	fastconfig.WithField("B", fastconfig.As(fastconfig.Union(fastconfig.String(), numeric)), fastconfig.Default(0)),
	fastconfig.WithField("C", fastconfig.Default(nil)),
	fastconfig.WithField("D", fastconfig.DefaultFunc(func() any { return map[string]map[string]int{} })),
	fastconfig.WithField("E", fastconfig.Default(0)),
	fastconfig.WithField("F", fastconfig.As(numeric), fastconfig.Default(0)),
)

func expectedBasic() *BasicTypes {
	return &BasicTypes{
		A: map[string]string{"first": "1", "second": "2"},
		B: true,
		C: 42,
		D: "str",
		E: []int{1, 2, 3},
		F: 0,
		G: fastconfig.LocalDate{Year: 1979, Month: 5, Day: 27},
	}
}

func expectedComplex() *ComplexTypes {
	return &ComplexTypes{
		A: 0,
		B: "apple",
		C: nil,
		D: map[string]map[string]int{"numeric": {"one": 1, "zero": 0}},
		E: "Any",
		F: int64(42),
	}
}

func fixture(name string) string {
	return filepath.Join("testdata", name)
}

// writeFile 在临时目录中写入文件并返回其路径。
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

// envMap 返回基于 map 的环境变量读取函数。
func envMap(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}
