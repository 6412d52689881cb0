package fastconfig

import (
	"os"
	"path/filepath"
)

// DefaultPaths 返回默认配置文件的查找顺序。
//
// appName 可选，提供后会追加应用专属路径。
// 返回顺序即查找顺序，先命中的文件生效。
//
// 优先级 (从高到低)：
//  1. ./.appname.toml - 当前目录应用配置
//  2. ~/.appname.toml - 用户主目录配置
//  3. /etc/appname/config.toml - 系统级配置
//  4. config.toml - 当前目录通用配置
//  5. config/config.toml - 子目录通用配置
func DefaultPaths(appName ...string) []string {
	var paths []string

	if len(appName) > 0 && appName[0] != "" {
		name := appName[0]
		paths = append(paths, "."+name+".toml")
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(home, "."+name+".toml"))
		}
		paths = append(paths, "/etc/"+name+"/config.toml")
	}

	paths = append(paths, "config.toml", "config/config.toml")

	return paths
}

// FirstExisting 返回 paths 中第一个存在的普通文件。
func FirstExisting(paths ...string) (string, bool) {
	for _, path := range paths {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}

	return "", false
}
