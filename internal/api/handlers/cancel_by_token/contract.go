package cancel_by_token

import (
	"context"

	cancelByToken "github.com/matutevip/ginecoschedule-sub001/internal/usecase/cancel_by_token"
)

type CancelByTokenUseCase interface {
	Execute(ctx context.Context, token string) (*cancelByToken.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
