package idgen

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/bwmarrin/snowflake"
)

// Generator hands out unique ids for history entries. Snowflake ids are
// time-ordered, so newest-first history lists can rely on id order too.
type Generator interface {
	GenerateID() int64
	GenerateStringID() string
}

// SnowflakeGenerator implements Generator using Twitter Snowflake.
type SnowflakeGenerator struct {
	node *snowflake.Node
	mu   sync.Mutex
}

// NewSnowflakeGenerator initializes a new ID generator.
// nodeID must be unique per server instance (0-1023) to prevent collisions.
func NewSnowflakeGenerator(nodeID int64) (*SnowflakeGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %w", err)
	}

	return &SnowflakeGenerator{
		node: node,
	}, nil
}

// GenerateID returns a new unique 64-bit integer ID
func (g *SnowflakeGenerator) GenerateID() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.node.Generate().Int64()
}

// GenerateStringID returns the decimal form used in persisted records.
func (g *SnowflakeGenerator) GenerateStringID() string {
	return strconv.FormatInt(g.GenerateID(), 10)
}
