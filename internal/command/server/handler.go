package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/lwmacct/251214-go-pkg-fastconfig/internal/config"
)

// newMux 注册 HTTP 路由，每个请求都读取最新的配置。
func newMux(current func() *config.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// 健康检查端点
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprint(w, `{"status":"ok"}`)
	})

	// 当前生效的配置，按 key 路径嵌套
	mux.HandleFunc("GET /config", func(w http.ResponseWriter, r *http.Request) {
		data, err := config.Schema().MarshalJSON(current())
		if err != nil {
			slog.Error("Encode config failed", "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)

			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	})

	// VitePress 文档静态文件服务
	docsFS := http.FileServer(http.Dir(current().ServerDocs))
	mux.Handle("/docs/", http.StripPrefix("/docs/", docsFS))

	// 默认首页（{$} 精确匹配根路径）
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `{"message":"Hello, World!"}`)
	})

	return mux
}
