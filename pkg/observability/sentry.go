package observability

import (
	"time"

	"github.com/getsentry/sentry-go"

	"fasttrack/config"
)

const sentryFlushTimeout = 2 * time.Second

// InitSentry 初始化错误上报，DSN 为空时不启用，返回的 flush 始终可调用
func InitSentry(cfg *config.SentryConfig) (func(), error) {
	noop := func() {}
	if cfg == nil || cfg.DSN == "" {
		return noop, nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		AttachStacktrace: true,
	})
	if err != nil {
		return noop, err
	}
	return func() { sentry.Flush(sentryFlushTimeout) }, nil
}

// CaptureErr 上报错误，tags 中的空值不写入
// 未初始化时 sentry 全局 Hub 无客户端，调用为空操作
func CaptureErr(err error, tags map[string]string) {
	if err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			if v != "" {
				scope.SetTag(k, v)
			}
		}
		sentry.CaptureException(err)
	})
}
