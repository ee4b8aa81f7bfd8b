package entity

import "github.com/google/uuid"

// Concurrency controls whether bundle members run one after another or at
// the same time. Closed set: the composer rejects unknown values instead of
// defaulting.
type Concurrency string

const (
	ConcurrencySerial   Concurrency = "serial"
	ConcurrencyParallel Concurrency = "parallel"
)

// HumanPolicy controls whether every member service must be performed by
// the identical human resource.
type HumanPolicy string

const (
	HumanPolicySame HumanPolicy = "same_human"
	HumanPolicyAny  HumanPolicy = "any_human"
)

type PriceMode string

const (
	PriceModeSum      PriceMode = "sum"
	PriceModeDiscount PriceMode = "discount"
)

// Bundle references member services by id; it never owns them.
type Bundle struct {
	Base
	Name            string      `db:"name"`
	ServiceIDs      []uuid.UUID // ordered
	Concurrency     Concurrency `db:"concurrency"`
	HumanPolicy     HumanPolicy `db:"human_policy"`
	PriceMode       PriceMode   `db:"price_mode"`
	DiscountPercent int         `db:"discount_percent"` // 0-100, only for PriceModeDiscount
	Active          bool        `db:"active"`
}
