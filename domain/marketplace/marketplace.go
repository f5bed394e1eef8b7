package marketplace

import (
	"time"

	"github.com/openxmarket/goapi/base/ctx"
	"github.com/openxmarket/goapi/domain"
)

// DefaultConfigId keys the singleton configuration document.
const DefaultConfigId = "default"

// Config is the process wide marketplace configuration. The owner is fixed
// at initialization and is also the fee recipient.
type Config struct {
	Id            string         `json:"-" bson:"id"`
	Owner         domain.Address `json:"owner" bson:"owner"`
	FeePercentage int32          `json:"feePercentage" bson:"feePercentage"`
	UpdatedAt     time.Time      `json:"updatedAt" bson:"updatedAt"`
}

type ConfigRepo interface {
	Get(c ctx.Ctx) (*Config, error)
	// Init inserts the configuration document unless one already exists.
	Init(c ctx.Ctx, cfg *Config) error
	SetFeePercentage(c ctx.Ctx, pct int32) error
}
