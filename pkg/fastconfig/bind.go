package fastconfig

import (
	"log/slog"
	"reflect"
)

// Build 根据文档构造新的记录实例。
//
// 按字段声明顺序解析；文档缺失的字段使用默认值（工厂每次都会重新调用），
// 缺失且没有默认值时返回 [ErrMissingRequiredElement]。
// 遇到第一个错误即返回，不会产生部分构造的实例。
func (s *Schema[T]) Build(doc Document) (*T, error) {
	out := new(T)
	record := reflect.ValueOf(out).Elem()

	for _, f := range s.fields {
		res, err := Resolve(f, doc, true)
		if err != nil {
			return nil, err
		}
		if res.UseDefault {
			err = f.assignDefault(record)
		} else {
			err = f.assign(record, res.Value)
		}
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Update 用文档中出现的字段原地覆盖 dst，缺失的字段保持原值，不会因缺失而报错。
//
// 更新不是事务性的：某个字段校验失败时，排在它之前的字段已经被写入 dst。
// 需要全有或全无的语义时，先 [Schema.Build] 再整体替换。
// 调用方需要保证同一实例不会被并发更新。
func (s *Schema[T]) Update(dst *T, doc Document) (*T, error) {
	if dst == nil {
		return nil, invalidConfig("must be of type struct or an instance of struct", nil)
	}
	record := reflect.ValueOf(dst).Elem()

	for _, f := range s.fields {
		res, err := Resolve(f, doc, false)
		if err != nil {
			return nil, err
		}
		if res.UseDefault {
			continue
		}
		if err := f.assign(record, res.Value); err != nil {
			return nil, err
		}
	}

	return dst, nil
}

// Load 读取配置文件并构造新的记录实例。
//
// 优先级 (从低到高)：
//  1. 字段默认值
//  2. 配置文件
//  3. 环境变量(前缀) - [WithEnvPrefix]
//  4. CLI flags - [WithCommand]
func (s *Schema[T]) Load(path string, opts ...Option) (*T, error) {
	doc, err := s.document(path, opts)
	if err != nil {
		return nil, err
	}

	return s.Build(doc)
}

// LoadInto 读取配置文件并原地更新 dst，语义同 [Schema.Update]。
func (s *Schema[T]) LoadInto(path string, dst *T, opts ...Option) (*T, error) {
	doc, err := s.document(path, opts)
	if err != nil {
		return nil, err
	}

	return s.Update(dst, doc)
}

// Bind 在 dst 为 nil 时构造新实例，否则原地更新 dst。
func (s *Schema[T]) Bind(path string, dst *T, opts ...Option) (*T, error) {
	if dst == nil {
		return s.Load(path, opts...)
	}

	return s.LoadInto(path, dst, opts...)
}

// MustLoad 调用 [Schema.Load] 并在失败时 panic，适合启动阶段。
func (s *Schema[T]) MustLoad(path string, opts ...Option) *T {
	cfg, err := s.Load(path, opts...)
	if err != nil {
		panic("fastconfig: failed to load config: " + err.Error())
	}

	return cfg
}

// Overlay 把环境变量与 CLI flags 按优先级写入 doc 并返回 doc，没有配置文件时可直接用于 [Schema.Build]。
//
// 示例：
//
//	cfg, err := schema.Build(schema.Overlay(fastconfig.Document{}, fastconfig.WithCommand(cmd)))
func (s *Schema[T]) Overlay(doc Document, opts ...Option) Document {
	if doc == nil {
		doc = Document{}
	}
	applyOverlays(doc, s.fields, newOptions(opts))

	return doc
}

func (s *Schema[T]) document(path string, opts []Option) (Document, error) {
	doc, err := LoadDocument(path, opts...)
	if err != nil {
		return nil, err
	}

	s.Overlay(doc, opts...)
	slog.Debug("Resolved config document", "path", path, "type", s.typ.String(), "fields", len(s.fields))

	return doc, nil
}
