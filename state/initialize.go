package state

import (
	"time"

	"go.uber.org/zap"
)

func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		// replaced as soon as configuration is loaded
		Log:   zap.NewNop(),
		start: time.Now(),
	}
}
