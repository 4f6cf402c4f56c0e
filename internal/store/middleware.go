package store

import (
	"fmt"

	"github.com/lalith-99/teamchat/internal/state"
	"go.uber.org/zap"
)

// ActionLogger logs every action before it is reduced.
func ActionLogger(logger *zap.Logger) Middleware {
	return func(next DispatchFunc) DispatchFunc {
		return func(action state.Action) {
			logger.Debug("action executed",
				zap.String("action", fmt.Sprintf("%T", action)),
			)
			next(action)
		}
	}
}
