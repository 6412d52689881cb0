package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251214-go-pkg-fastconfig/internal/command"
	"github.com/lwmacct/251214-go-pkg-fastconfig/internal/config"
	"github.com/lwmacct/251214-go-pkg-fastconfig/pkg/fastconfig"
)

func action(ctx context.Context, cmd *cli.Command) error {
	// 加载配置：默认值 → 配置文件 → 环境变量 → CLI flags
	current, stop, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer stop()

	cfg := current()
	slog.SetLogLoggerLevel(cfg.SlogLevel())

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      newMux(current),
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.ReadTimeout(),
		IdleTimeout:  cfg.IdleTimeout(),
	}

	// 启动服务器（非阻塞）
	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "addr", cfg.ServerAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待中断信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sigChan:
	case err := <-errCh:
		slog.Error("Server error", "error", err)

		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("Shutting down")

	// 使用 WithoutCancel 保持 context 链，同时防止父 context 取消影响 shutdown
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ReadTimeout())
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)

		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("Server stopped gracefully")

	return nil
}

// loadConfig 返回读取当前配置的函数。
//
// 找到配置文件时通过 Holder 监听文件变化；否则只使用默认值、环境变量与 CLI flags。
func loadConfig(cmd *cli.Command) (func() *config.Config, func(), error) {
	opts := command.LoadOptions(cmd)

	path, found := command.ConfigPath(cmd)
	if !found {
		slog.Warn("Config file not found, using defaults", "name", config.FileName)

		cfg, err := config.Schema().Build(config.Schema().Overlay(fastconfig.Document{}, opts...))
		if err != nil {
			return nil, nil, fmt.Errorf("build config: %w", err)
		}

		return func() *config.Config { return cfg }, func() {}, nil
	}

	holder, err := fastconfig.NewHolder(config.Schema(), path, opts...)
	if err != nil {
		return nil, nil, err
	}
	holder.OnChange(func(cfg *config.Config) {
		slog.SetLogLoggerLevel(cfg.SlogLevel())
	})
	if err := holder.Watch(); err != nil {
		_ = holder.Close()
		return nil, nil, err
	}
	slog.Info("Loaded config from file", "path", holder.Path())

	return holder.Get, func() { _ = holder.Close() }, nil
}
