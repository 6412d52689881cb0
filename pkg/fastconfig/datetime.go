package fastconfig

import (
	"time"

	"github.com/pelletier/go-toml/v2"
)

// isoLayouts 覆盖常见的 ISO 8601 写法，日期与时间之间的空格在解析前统一为 'T'。
// 秒后的小数部分由 time.Parse 自动接受。
var isoLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
}

// parseISODateTime 将字符串解析为时间，不带时区的写法按 UTC 处理。
func parseISODateTime(s string) (time.Time, bool) {
	if len(s) > 10 && s[10] == ' ' {
		s = s[:10] + "T" + s[11:]
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func dateOf(t time.Time) LocalDate {
	return LocalDate{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

func timeOf(t time.Time) LocalTime {
	return LocalTime{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(), Nanosecond: t.Nanosecond()}
}

// narrow 把完整时间收窄到 kind 要求的部分。
func narrow(t time.Time, kind Kind) any {
	switch kind {
	case KindDate:
		return dateOf(t)
	case KindTime:
		return timeOf(t)
	default:
		return t
	}
}

// matchTemporal 处理 date / datetime / time 三种描述。
//
// 字符串只会转换为 date 或 datetime，永远不满足 time；
// 只有 datetime 可以收窄，date 与 time 不会扩展为 datetime。
func matchTemporal(value any, kind Kind) (any, bool) {
	switch v := value.(type) {
	case time.Time:
		return narrow(v, kind), true
	case toml.LocalDateTime:
		return narrow(v.AsTime(time.UTC), kind), true
	case LocalDate:
		return v, kind == KindDate
	case LocalTime:
		return v, kind == KindTime
	case string:
		if kind == KindTime {
			return nil, false
		}
		t, ok := parseISODateTime(v)
		if !ok {
			return nil, false
		}
		return narrow(t, kind), true
	}

	return nil, false
}
