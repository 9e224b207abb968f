package investment

import (
	"regexp"
	"strings"
	"time"

	"bolso/internal/domain/fault"
	"bolso/internal/money"
)

// AssetClass classifies a holding.
type AssetClass string

const (
	ClassStocks      AssetClass = "stocks"
	ClassBonds       AssetClass = "bonds"
	ClassMutualFunds AssetClass = "mutual_funds"
	ClassETFs        AssetClass = "etfs"
	ClassCrypto      AssetClass = "crypto"
	ClassCash        AssetClass = "cash"
)

var assetClasses = map[AssetClass]struct{}{
	ClassStocks:      {},
	ClassBonds:       {},
	ClassMutualFunds: {},
	ClassETFs:        {},
	ClassCrypto:      {},
	ClassCash:        {},
}

// IsValidAssetClass checks if the provided asset class is valid.
func IsValidAssetClass(c AssetClass) bool {
	_, ok := assetClasses[c]
	return ok
}

// Ticker shape: 1-5 uppercase letters with an optional numeric suffix,
// covering US symbols (AAPL, BRK) and B3 symbols (PETR4, VALE3).
var tickerPattern = regexp.MustCompile(`^[A-Z]{1,5}[0-9]{0,2}$`)

// IsValidSymbol checks if the provided symbol matches the ticker shape.
func IsValidSymbol(s string) bool {
	return tickerPattern.MatchString(s)
}

// Investment represents one holding inside an investment account. CostBasis
// and CurrentPrice are per-unit values; CurrentPrice and LastUpdatedAt are
// the only fields mutated by the refresh operation.
type Investment struct {
	ID            string     `json:"id"`
	AccountID     string     `json:"accountId"`
	Symbol        string     `json:"symbol"`
	Name          string     `json:"name"`
	Quantity      float64    `json:"quantity"`
	CostBasis     float64    `json:"costBasis"`
	CurrentPrice  float64    `json:"currentPrice"`
	LastUpdatedAt time.Time  `json:"lastUpdatedAt"`
	AssetClass    AssetClass `json:"assetClass"`
}

// CurrentValue returns quantity × current price.
func (i Investment) CurrentValue() float64 {
	return money.Mul(i.Quantity, i.CurrentPrice)
}

// ReturnAmount returns the absolute gain or loss over the cost basis.
func (i Investment) ReturnAmount() float64 {
	return money.Mul(i.Quantity, money.Sub(i.CurrentPrice, i.CostBasis))
}

// ReturnRatio returns the per-unit gain relative to the cost basis:
// (price − cost) / cost. Zero when the cost basis is zero.
func (i Investment) ReturnRatio() float64 {
	return money.Ratio(money.Sub(i.CurrentPrice, i.CostBasis), i.CostBasis)
}

// FormattedReturnAmount renders the return with an explicit "+" for gains.
func (i Investment) FormattedReturnAmount(currency string) string {
	return money.FormatSignedAmount(i.ReturnAmount(), currency)
}

// FormattedReturnPercentage renders the return ratio with one fraction digit
// and an explicit "+" for gains.
func (i Investment) FormattedReturnPercentage() string {
	return money.FormatSignedPercent(i.ReturnRatio())
}

// CreateParams contains parameters for adding a holding.
type CreateParams struct {
	AccountID    string
	Symbol       string
	Name         string
	Quantity     float64
	CostBasis    float64
	CurrentPrice float64
	AssetClass   AssetClass
}

// Validate validates the create parameters.
func (p CreateParams) Validate() error {
	if p.AccountID == "" {
		return fault.NewValidation("accountId", "is required")
	}
	if !IsValidSymbol(p.Symbol) {
		return fault.NewValidation("symbol", "must match the ticker pattern")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fault.NewValidation("name", "is required")
	}
	if p.Quantity < 0 {
		return fault.NewValidation("quantity", "must be non-negative")
	}
	if p.CostBasis < 0 {
		return fault.NewValidation("costBasis", "must be non-negative")
	}
	if p.CurrentPrice < 0 {
		return fault.NewValidation("currentPrice", "must be non-negative")
	}
	if !IsValidAssetClass(p.AssetClass) {
		return fault.NewValidation("assetClass", "must be a known asset class")
	}
	return nil
}

// ValidatePrice validates a refreshed price before it is applied.
func ValidatePrice(price float64) error {
	if price < 0 {
		return fault.NewValidation("currentPrice", "must be non-negative")
	}
	return nil
}
