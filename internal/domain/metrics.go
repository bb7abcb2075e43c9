package domain

// ActualDateRange is the span of order dates actually found inside the
// requested window; Min/Max are null when the scope matched nothing
type ActualDateRange struct {
	Min  *string `json:"min"`
	Max  *string `json:"max"`
	Days int     `json:"days"`
}

// MetricPeriodResult is the aggregation output for one (scope, period)
// pair. It is derived and recomputed on every request, never stored.
type MetricPeriodResult struct {
	StartDate               string          `json:"startDate"`
	EndDate                 string          `json:"endDate"`
	ActualDateRange         ActualDateRange `json:"actualDateRange"`
	TotalPurchaseQuantity   int             `json:"totalPurchaseQuantity"`
	TotalPurchaseAmount     float64         `json:"totalPurchaseAmount"`
	TotalOrders             int             `json:"totalOrders"`
	AveragePurchasePrice    float64         `json:"averagePurchasePrice"`
	TotalOrderedQuantity    int             `json:"totalOrderedQuantity"`
	TotalStockBreakQuantity int             `json:"totalStockBreakQuantity"`
	TotalStockBreakAmount   float64         `json:"totalStockBreakAmount"`
	StockBreakRate          float64         `json:"stockBreakRate"`
}

// Evolution is the delta of one metric between the current and the
// comparison period
type Evolution struct {
	Absolute   float64 `json:"absolute"`
	Percentage float64 `json:"percentage"`
	IsPositive bool    `json:"isPositive"`
}

// ComparisonBlock wraps the comparison-period result plus per-metric deltas
type ComparisonBlock struct {
	MetricPeriodResult
	Evolution map[string]Evolution `json:"evolution"`
}

// SellinSummary is the response body of POST /api/sales/sellin
type SellinSummary struct {
	MetricPeriodResult
	PharmacyIDs []string         `json:"pharmacyIds"`
	Comparison  *ComparisonBlock `json:"comparison,omitempty"`
}

// SegmentDistributionItem is one slice of the sell-out segment distribution
type SegmentDistributionItem struct {
	Segment       string  `json:"segment"`
	Revenue       float64 `json:"revenue"`
	Margin        float64 `json:"margin"`
	MarginPercent float64 `json:"marginPercent"`
	Quantity      int     `json:"quantity"`
	ProductCount  int     `json:"productCount"`
}

// SegmentEvolutionItem tracks one segment across both periods
type SegmentEvolutionItem struct {
	Segment          string    `json:"segment"`
	CurrentRevenue   float64   `json:"currentRevenue"`
	PreviousRevenue  float64   `json:"previousRevenue"`
	RevenueEvolution Evolution `json:"revenueEvolution"`
	CurrentMargin    float64   `json:"currentMargin"`
	PreviousMargin   float64   `json:"previousMargin"`
	MarginEvolution  Evolution `json:"marginEvolution"`
}

// SegmentPurchaseItem is one slice of the sell-in by-segment distribution
type SegmentPurchaseItem struct {
	Segment          string  `json:"segment"`
	OrderedQuantity  int     `json:"orderedQuantity"`
	ReceivedQuantity int     `json:"receivedQuantity"`
	PurchaseAmount   float64 `json:"purchaseAmount"`
}

// SegmentStockItem is one slice of the stock by-segment distribution
type SegmentStockItem struct {
	Segment      string  `json:"segment"`
	StockUnits   int     `json:"stockUnits"`
	StockValue   float64 `json:"stockValue"`
	ProductCount int     `json:"productCount"`
}

// ClassifiedProduct is one product with its derived ratio and band label
type ClassifiedProduct struct {
	Code13Ref  string  `json:"code13ref"`
	Name       string  `json:"name"`
	Laboratory string  `json:"laboratory"`
	Value      float64 `json:"value"`
	Band       string  `json:"band"`
}

// BandGroup holds every product that fell into one band, for drill-down
type BandGroup struct {
	Band     string              `json:"band"`
	Count    int                 `json:"count"`
	Products []ClassifiedProduct `json:"products"`
}
