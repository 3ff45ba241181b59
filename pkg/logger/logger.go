package logger

import (
	"go.uber.org/zap"
)

// Log 全局日志实例，未初始化时为 Nop，库内调用无需判空
var Log = zap.NewNop()

// Init 根据运行环境初始化全局日志
// dev/test 使用开发配置（彩色、可读），其它环境输出 JSON
func Init(env string) error {
	var (
		l   *zap.Logger
		err error
	)
	switch env {
	case "", "dev", "test":
		l, err = zap.NewDevelopment()
	default:
		l, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	Log = l
	return nil
}

// Sync 刷新缓冲区
func Sync() {
	_ = Log.Sync()
}
