package bootstrap

import (
	"log/slog"

	"reservebook/internal/pkg/config"
	"reservebook/internal/pkg/notice"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var NoticeModule = fx.Module("notice",
	fx.Provide(
		NewNoticeCodec,
	),
)

func NewNoticeCodec(cfg config.Config, logger *slog.Logger) *notice.Codec {
	if gin.Mode() == gin.ReleaseMode && cfg.App.SecretKey == config.DefaultSecretKey {
		logger.Warn("SECRET_KEY が既定値のままです。本番環境では必ず変更してください")
	}
	return notice.NewCodec(cfg.App.SecretKey, cfg.App.NoticeTTL)
}
