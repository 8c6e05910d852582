package modkit

import (
	"posdash/internal/modkit/repokit"
	"posdash/internal/platform/config"
	"posdash/internal/platform/logger"
	"posdash/internal/platform/store"
)

// Deps are the shared handles every module receives
// PG and CH are nil when their store is disabled; modules decide what that means.
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}
