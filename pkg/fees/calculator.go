package fees

// vatRate is the VAT charged on the sales commission.
const vatRate = 0.10

// Input is one fee calculation request. All money is in KRW and must be
// non-negative and finite; a SalePrice of 0 means no price is known yet.
type Input struct {
	SalePrice      float64  `json:"sale_price"`
	CommissionRate float64  `json:"commission_rate"`
	Cost           float64  `json:"cost"`
	ExtraCost      float64  `json:"extra_cost"`
	Size           SizeTier `json:"size"`
}

// Result is the full fee and profit breakdown for an Input.
type Result struct {
	SalesCommission float64 `json:"sales_commission"`
	VAT             float64 `json:"vat"`
	TotalSalesFee   float64 `json:"total_sales_fee"`

	LogisticsInbound  int64 `json:"logistics_inbound"`
	LogisticsShipping int64 `json:"logistics_shipping"`
	TotalLogisticsFee int64 `json:"total_logistics_fee"`

	TotalFee float64 `json:"total_fee"`

	Cost      float64 `json:"cost"`
	ExtraCost float64 `json:"extra_cost"`
	TotalCost float64 `json:"total_cost"`

	NetProfit        float64 `json:"net_profit"`
	MarginRate       float64 `json:"margin_rate"`
	MaxPurchasePrice float64 `json:"max_purchase_price"`

	CommissionRate float64  `json:"commission_rate"`
	Size           SizeTier `json:"size"`
}

// Calculate computes the breakdown for in. A zero sale price yields an
// all-zero Result. MaxPurchasePrice is the break-even cost and is left
// negative when no cost can break even.
func (s *Schedule) Calculate(in Input) Result {
	if in.SalePrice == 0 {
		return Result{Size: in.Size}
	}

	commission := in.SalePrice * in.CommissionRate
	vat := commission * vatRate
	salesFee := commission + vat

	logistics := s.LookupFee(in.SalePrice, in.Size)
	inbound, shipping := SplitLogistics(logistics)

	totalFee := salesFee + float64(logistics)
	totalCost := totalFee + in.Cost + in.ExtraCost
	netProfit := in.SalePrice - totalCost

	return Result{
		SalesCommission:   commission,
		VAT:               vat,
		TotalSalesFee:     salesFee,
		LogisticsInbound:  inbound,
		LogisticsShipping: shipping,
		TotalLogisticsFee: logistics,
		TotalFee:          totalFee,
		Cost:              in.Cost,
		ExtraCost:         in.ExtraCost,
		TotalCost:         totalCost,
		NetProfit:         netProfit,
		MarginRate:        netProfit / in.SalePrice * 100,
		MaxPurchasePrice:  in.SalePrice - totalFee - in.ExtraCost,
		CommissionRate:    in.CommissionRate,
		Size:              in.Size,
	}
}

// RecommendedMaxCost returns the highest purchase cost that still leaves
// targetMarginPct percent of the sale price as profit. It never goes below 0.
func (s *Schedule) RecommendedMaxCost(in Input, targetMarginPct float64) float64 {
	r := s.Calculate(in)
	targetProfit := in.SalePrice * (targetMarginPct / 100)
	return max(in.SalePrice-targetProfit-r.TotalFee-in.ExtraCost, 0)
}
