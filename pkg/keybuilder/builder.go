package keybuilder

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	Redis string = "redis"
	Order string = "order"
)

func RedisOrderKeyBuild(id uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s", Redis, Order, id)
}
