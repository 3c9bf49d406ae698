package snowflake

import (
	"sync"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
)

var (
	node     *snowflake.Node
	nodeOnce sync.Once
)

// Init initialises the snowflake node. Call once at startup.
// machineID must be unique per server instance (0-1023).
func Init(machineID int64) {
	nodeOnce.Do(func() {
		if machineID < 0 || machineID > 1023 {
			machineID = 1
			zap.L().Warn("invalid snowflake machineID in config, using default 1")
		}
		var err error
		node, err = snowflake.NewNode(machineID)
		if err != nil {
			zap.L().Fatal("failed to initialize snowflake node", zap.Error(err))
		}
	})
}

// GenerateID generates a snowflake ID (int64), used for message uuids.
func GenerateID() int64 {
	if node == nil {
		Init(1)
	}
	return node.Generate().Int64()
}
