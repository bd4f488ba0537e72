package snowflake

import (
	"errors"
	"strconv"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	defaultGen *Generator
	once       sync.Once

	errInvalidMachineID   = errors.New("invalid snowflake machine id")
	errInvalidDataCenter  = errors.New("invalid snowflake datacenter id")
	errGeneratorUninitial = errors.New("snowflake generator is not initialized")
)

// Generator 生成联系人等实体的唯一 ID
type Generator struct {
	node *snowflake.Node
}

// NewGenerator datacenterID 和 machineID 都是 0~31
func NewGenerator(machineID, dataCenterID int64) (*Generator, error) {
	if machineID < 0 || machineID > 31 {
		return nil, errInvalidMachineID
	}
	if dataCenterID < 0 || dataCenterID > 31 {
		return nil, errInvalidDataCenter
	}

	node, err := snowflake.NewNode((dataCenterID << 5) | machineID)
	if err != nil {
		return nil, err
	}
	return &Generator{node: node}, nil
}

// NextID 返回十进制字符串形式的 ID
func (g *Generator) NextID() (string, error) {
	if g == nil || g.node == nil {
		return "", errGeneratorUninitial
	}
	return strconv.FormatInt(g.node.Generate().Int64(), 10), nil
}

// Init 初始化进程级默认生成器
func Init(machineID, dataCenterID int64) error {
	var initErr error

	once.Do(func() {
		defaultGen, initErr = NewGenerator(machineID, dataCenterID)
	})

	return initErr
}

// Default 返回进程级默认生成器，未初始化时为 nil
func Default() *Generator {
	return defaultGen
}
