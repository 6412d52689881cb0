// Package fastconfig 把 JSON / TOML 配置文件绑定到声明式的 Go 结构体。
//
// 每个字段带有 key 路径、默认值、取值范围与自定义校验等元数据，
// 绑定时逐字段取值、回退默认值并按类型描述递归校验（支持嵌套的 list / map、
// Union、Optional 以及 date / datetime / time 的转换）；
// 记录也可以按字段的 key 路径还原为嵌套文档。
//
// # 快速开始
//
// 定义结构体并注册 schema：
//
//	type Config struct {
//	    Flag  bool              `fc:"flag" default:"false"`
//	    Port  int               `fc:"section.int" default:"0"`
//	    Name  string            `fc:"str" default:"default"`
//	    Tags  []string          `fc:"section.tags"`
//	    Since fastconfig.LocalDate `fc:"section.since"`
//	}
//
//	var schema = fastconfig.MustSchema[Config](
//	    fastconfig.WithField("Tags", fastconfig.DefaultFunc(func() any { return []string{} })),
//	    fastconfig.WithField("Port", fastconfig.Choices(0, 80, 443)),
//	)
//
//	cfg, err := schema.Load("config.toml")
//
// 没有默认值的字段是必填的，文档缺失时返回 [ErrMissingRequiredElement]。
//
// # 字段元数据
//
// 结构体标签：
//   - fc:"a.b.c" - key 路径，按分隔符拆分；fc:"-" 跳过该字段
//   - sep:"/" - 分隔符，默认 "."
//   - default:"42" - 固定默认值，按 TOML 标量解析；字符串字段保留原文
//
// 未设置 fc 标签时 key 取 json 标签名，否则取字段名，不做拆分。
// 标签之外的元数据通过 [WithDefaults] 与 [WithField] 设置，例如 [Key]、[KeyPath]、
// [Default]、[DefaultFunc]、[Required]、[Choices]、[Validate]、[As]。
//
// # 类型描述
//
// 类型描述默认由 Go 类型推导（见 [TypeOf]），Union 等 Go 无法直接表达的形状用 [As] 声明：
//
//	fastconfig.WithField("Value", fastconfig.As(fastconfig.Union(fastconfig.Int(), fastconfig.String())))
//
// 匹配规则：
//   - 基本类型严格按种类匹配，int 与 float 互不兼容，bool 不是 int
//   - Union 从左到右尝试，首个成功者生效
//   - 字符串可以转换为 date / datetime（ISO 8601），但不会转换为 time
//   - datetime 可以收窄为 date / time，反之不行
//
// # 构建与更新
//
// [Schema.Build] / [Schema.Load] 构造新实例；[Schema.Update] / [Schema.LoadInto] 只覆盖文档中出现的字段，
// 缺失字段保持原值且不会报错。更新不是事务性的，失败时之前的字段已被写入。
//
// # 加载优先级 (从低到高)
//
//  1. 字段默认值
//  2. 配置文件
//  3. 环境变量(前缀) - [WithEnvPrefix]
//  4. CLI flags - [WithCommand]，flag 名为 key 路径以 "-" 连接
//
// # 还原文档
//
// [Schema.ToMap] 返回嵌套文档，[Schema.MarshalJSON]、[Schema.MarshalTOML]、[Schema.MarshalYAML] 直接输出文本。
// 对没有 key 路径前缀冲突的 schema，Build(ToMap(r)) 与 r 相等。
//
// # 错误
//
// 所有配置错误都可以用 errors.Is 判断：[ErrConfig] 之下为 [ErrInvalidConfig]、
// [ErrMissingRequiredElement]、[ErrUnexpectedValue] 与 [ErrUnsupportedType]。
// 文件不存在时返回 [NotFoundError]，它满足 errors.Is(err, fs.ErrNotExist)。
//
// # 查找
//
// [Search] 从当前目录向上查找配置文件，默认在项目根目录（含 .git 或 .hg）处停止。
//
// # 热加载
//
// [Holder] 持有当前配置，[Holder.Watch] 在文件变化时重新构造并整体替换。
package fastconfig
