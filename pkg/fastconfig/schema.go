package fastconfig

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Schema 是已注册的记录类型：Go 结构体 T 的字段及其元数据，按声明顺序排列。
//
// Schema 注册后只读，可以在多个 goroutine 间共享；绑定得到的记录实例本身不做并发保护。
type Schema[T any] struct {
	typ    reflect.Type
	fields []*Field
}

// schemaOptions 注册选项。
type schemaOptions struct {
	defaults  reflect.Value
	overrides []fieldOverride
}

type fieldOverride struct {
	name string
	opts []FieldOption
}

// SchemaOption 配置 schema 注册。
type SchemaOption func(*schemaOptions)

// WithField 为名为 name 的 Go 字段追加元数据选项，name 不存在时注册失败。
//
// 示例：
//
//	fastconfig.NewSchema[Config](
//	    fastconfig.WithField("Port", fastconfig.Key("server.port"), fastconfig.Default(8080)),
//	    fastconfig.WithField("Mode", fastconfig.Choices("dev", "prod")),
//	)
func WithField(name string, opts ...FieldOption) SchemaOption {
	return func(o *schemaOptions) {
		o.overrides = append(o.overrides, fieldOverride{name: name, opts: opts})
	}
}

// WithDefaults 以 defaultConfig 的字段值作为全部字段的固定默认值。
//
// 优先级高于 default 标签，低于 [WithField]；配合 [Required] 可把个别字段改回必填。
func WithDefaults[T any](defaultConfig T) SchemaOption {
	return func(o *schemaOptions) {
		o.defaults = reflect.ValueOf(defaultConfig)
	}
}

// NewSchema 注册结构体 T。
//
// 字段元数据来源 (从低到高)：
//  1. 结构体标签 - fc (key，"-" 表示跳过)、sep (分隔符)、default (默认值)
//  2. [WithDefaults]
//  3. [WithField]
//
// 未设置 fc 标签时，key 取 json 标签名，否则取字段名，且不做拆分。
// 所有元数据在注册时一次性校验：类型描述必须受支持，固定默认值必须可以赋给字段。
func NewSchema[T any](opts ...SchemaOption) (*Schema[T], error) {
	typ := reflect.TypeFor[T]()
	if typ.Kind() != reflect.Struct {
		return nil, invalidConfig("must be of type struct or an instance of struct", nil)
	}

	o := &schemaOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.defaults.IsValid() && o.defaults.Type() != typ {
		return nil, invalidConfig(fmt.Sprintf("defaults must be of type %s, got %s", typ, o.defaults.Type()), nil)
	}

	s := &Schema[T]{typ: typ}
	byName := make(map[string]*Field)
	for i := range typ.NumField() {
		sf := typ.Field(i)
		if !sf.IsExported() || sf.Anonymous {
			continue
		}
		f, skip := fieldFromTag(sf)
		if skip {
			continue
		}
		if o.defaults.IsValid() {
			f.DefaultKind = LiteralDefault
			f.DefaultValue = o.defaults.Field(i).Interface()
		}
		s.fields = append(s.fields, f)
		byName[f.Name] = f
	}

	for _, ov := range o.overrides {
		f, ok := byName[ov.name]
		if !ok {
			return nil, invalidConfig(fmt.Sprintf("%s has no field %s", typ, ov.name), nil)
		}
		for _, opt := range ov.opts {
			opt(f)
		}
	}

	scratch := reflect.New(typ).Elem()
	for _, f := range s.fields {
		if err := f.finalize(scratch); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// MustSchema 调用 [NewSchema] 并在失败时 panic，适合包级变量初始化。
func MustSchema[T any](opts ...SchemaOption) *Schema[T] {
	s, err := NewSchema[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("fastconfig: failed to register schema: %v", err))
	}

	return s
}

// Fields 返回字段元数据的副本，顺序与结构体声明一致。
func (s *Schema[T]) Fields() []Field {
	out := make([]Field, len(s.fields))
	for i, f := range s.fields {
		out[i] = *f
		out[i].Path = append([]string(nil), f.Path...)
	}

	return out
}

// fieldFromTag 根据结构体标签生成初始元数据。
func fieldFromTag(sf reflect.StructField) (*Field, bool) {
	tag, hasTag := sf.Tag.Lookup("fc")
	if tag == "-" {
		return nil, true
	}

	f := &Field{
		Name:      sf.Name,
		Separator: DefaultSeparator,
		index:     sf.Index,
		goType:    sf.Type,
	}
	if sep := sf.Tag.Get("sep"); sep != "" {
		f.Separator = sep
	}

	switch {
	case hasTag && tag != "":
		f.Key = tag
		f.split = true
	case parseTagName(sf.Tag.Get("json")) != "":
		f.Key = parseTagName(sf.Tag.Get("json"))
	default:
		f.Key = sf.Name
	}

	if def, ok := sf.Tag.Lookup("default"); ok {
		f.DefaultKind = LiteralDefault
		f.DefaultValue = parseDefaultTag(def, sf.Type)
	}

	return f, false
}

func parseTagName(tag string) string {
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return ""
	}

	return name
}

// parseDefaultTag 把 default 标签解析为值，字符串字段保留原文。
func parseDefaultTag(raw string, typ reflect.Type) any {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() == reflect.String {
		return raw
	}

	return parseScalar(raw)
}

// finalize 补全并校验元数据，scratch 用于试赋固定默认值。
func (f *Field) finalize(scratch reflect.Value) error {
	if f.Type == nil {
		t, err := TypeOf(f.goType)
		if err != nil {
			return err
		}
		f.Type = t
	}
	if err := f.Type.validate(); err != nil {
		return err
	}

	if f.Path == nil {
		f.Path = keyPath(f.Key, f.Separator, f.split)
	}
	if len(f.Path) == 0 {
		return invalidConfig(fmt.Sprintf("%s: key path must not be empty", f.Name), nil)
	}

	switch f.DefaultKind {
	case LiteralDefault:
		if err := f.assign(scratch, f.DefaultValue); err != nil {
			return invalidConfig(fmt.Sprintf("%s: invalid default value %v", f.Name, f.DefaultValue), err)
		}
	case FactoryDefault:
		if f.DefaultFunc == nil {
			return invalidConfig(fmt.Sprintf("%s: default factory must not be nil", f.Name), nil)
		}
	}

	return nil
}

// assign 把值写入 record 中对应的字段。
//
// 容器类型总是整体替换而不是合并，固定默认值因此也会被复制一份。
func (f *Field) assign(record reflect.Value, value any) error {
	target := record.FieldByIndex(f.index)
	if err := f.checkRange(value); err != nil {
		return err
	}

	// mapstructure 会按 interface 中已有值的类型解码，这里直接替换
	if target.Kind() == reflect.Interface {
		if value == nil {
			target.Set(reflect.Zero(target.Type()))
			return nil
		}
		rv := reflect.ValueOf(value)
		if !rv.Type().AssignableTo(target.Type()) {
			return unexpectedValue(fmt.Sprintf("%s: %v cannot be assigned to %s", f.Name, value, f.goType), nil)
		}
		target.Set(rv)

		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     target.Addr().Interface(),
		ZeroFields: true,
		TagName:    "json",
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(value); err != nil {
		return unexpectedValue(fmt.Sprintf("%s: %v cannot be assigned to %s", f.Name, value, f.goType), err)
	}

	return nil
}

// checkRange 检查数值是否超出字段 Go 类型的取值范围，容器按元素逐个检查。
func (f *Field) checkRange(value any) error {
	if f.goType == nil || fits(f.goType, value) {
		return nil
	}

	return unexpectedValue(fmt.Sprintf("%s: %v overflows %s", f.Name, value, f.goType), nil)
}

func fits(typ reflect.Type, value any) bool {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	rv := reflect.ValueOf(deref(value))
	if !rv.IsValid() {
		return true
	}
	zero := reflect.Zero(typ)

	switch typ.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return !zero.OverflowInt(rv.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return rv.Uint() <= math.MaxInt64 && !zero.OverflowInt(int64(rv.Uint())) //nolint:gosec // checked
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return rv.Int() >= 0 && !zero.OverflowUint(uint64(rv.Int()))
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return !zero.OverflowUint(rv.Uint())
		}
	case reflect.Float32:
		if rv.Kind() == reflect.Float32 || rv.Kind() == reflect.Float64 {
			return !zero.OverflowFloat(rv.Float())
		}
	case reflect.Slice, reflect.Array:
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return true
		}
		for i := range rv.Len() {
			if !fits(typ.Elem(), rv.Index(i).Interface()) {
				return false
			}
		}
	case reflect.Map:
		if rv.Kind() != reflect.Map {
			return true
		}
		iter := rv.MapRange()
		for iter.Next() {
			if !fits(typ.Key(), iter.Key().Interface()) || !fits(typ.Elem(), iter.Value().Interface()) {
				return false
			}
		}
	}

	return true
}

// typed 把已校验的标量值转换为字段的 Go 类型，指针字段按其元素类型转换。
// 类别不同（例如 interface 字段或 Union 中的其他分支）时原样返回。
func (f *Field) typed(value any) any {
	if f.goType == nil || value == nil {
		return value
	}
	typ := f.goType
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	rv := reflect.ValueOf(deref(value))
	if !rv.IsValid() || rv.Type() == typ || scalarClass(rv.Kind()) == 0 ||
		scalarClass(rv.Kind()) != scalarClass(typ.Kind()) {
		return value
	}

	return rv.Convert(typ).Interface()
}

// scalarClass 按可互相转换的类别划分标量 kind，0 表示非标量。
func scalarClass(k reflect.Kind) int {
	switch k {
	case reflect.Bool:
		return 1
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return 2
	case reflect.Float32, reflect.Float64:
		return 3
	case reflect.String:
		return 4
	default:
		return 0
	}
}

// assignDefault 写入字段的默认值。
func (f *Field) assignDefault(record reflect.Value) error {
	switch f.DefaultKind {
	case LiteralDefault:
		return f.assign(record, f.DefaultValue)
	case FactoryDefault:
		return f.assign(record, f.DefaultFunc())
	default:
		return missingElement(f.Name)
	}
}
