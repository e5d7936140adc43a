package sportsbook

import "go.uber.org/zap"

func newNoopLogger() *zap.Logger {
	return zap.NewNop()
}
