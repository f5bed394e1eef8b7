package domain

import (
	"math/big"
	"strings"

	"golang.org/x/xerrors"
)

type ChainId int32

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

type TokenId string

func (i TokenId) String() string {
	return string(i)
}

type ListingId uint64

// Table is a mongo collection name
type Table string

const (
	TableListings           Table = "listings"
	TableCounters           Table = "counters"
	TableMarketplaceConfigs Table = "marketplace_configs"
	TableMarketplaceEvents  Table = "marketplace_events"
	TableNftHoldings        Table = "nft_holdings"
	TableBalances           Table = "balances"
)

// ParseAmount parses a base-10 integer amount in the smallest payment unit.
func ParseAmount(s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, xerrors.Errorf("invalid amount %s: %w", s, ErrInvalidNumberFormat)
	}
	if n.Sign() < 0 {
		return nil, xerrors.Errorf("negative amount %s: %w", s, ErrInvalidNumberFormat)
	}
	return n, nil
}
