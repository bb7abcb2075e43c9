package domain

// Pharmacy represents a pharmacy, used as a scope-filter dimension
type Pharmacy struct {
	ID             string `json:"id" db:"id"`
	Name           string `json:"name" db:"name"`
	Area           string `json:"area" db:"area"`
	RevenueBracket string `json:"ca" db:"ca_bracket"`
	EmployeesCount int    `json:"employees_count" db:"employees_count"`
}

// Product represents master product data, read-only for the engine
type Product struct {
	Code13Ref     string  `json:"code_13_ref" db:"code_13_ref"`
	Name          string  `json:"name" db:"name"`
	Laboratory    string  `json:"brand_lab" db:"laboratory"`
	Universe      string  `json:"universe" db:"universe"`
	Category      string  `json:"category" db:"category"`
	Family        string  `json:"family" db:"family"`
	SubFamily     string  `json:"sub_family" db:"sub_family"`
	Range         string  `json:"range_name" db:"range_name"`
	CurrentStock  int     `json:"current_stock" db:"current_stock"`
	TVAPercentage float64 `json:"tva_percentage" db:"tva_percentage"`
}

// OrderLineFact is one order line joined with its parent order, the unit
// the purchase/break aggregation works on. SentDate is a calendar day in
// YYYY-MM-DD form; dates of that shape compare correctly as strings.
type OrderLineFact struct {
	OrderID          string `db:"order_id"`
	PharmacyID       string `db:"pharmacy_id"`
	ProductCode      string `db:"product_code"`
	SentDate         string `db:"sent_date"`
	OrderedQuantity  int    `db:"ordered_quantity"`
	BonusQuantity    int    `db:"bonus_quantity"`
	ReceivedQuantity int    `db:"received_quantity"`
}

// InventorySnapshot is a dated observation of a product's weighted-average
// cost and retail price with tax
type InventorySnapshot struct {
	ProductCode         string  `db:"product_code"`
	Date                string  `db:"date"`
	WeightedAverageCost float64 `db:"weighted_average_price"`
	RetailPriceWithTax  float64 `db:"price_with_tax"`
}

// ProductMetric carries the per-product figures the classification
// endpoints derive their ratios from
type ProductMetric struct {
	Code13Ref           string  `json:"code_13_ref" db:"code_13_ref"`
	Name                string  `json:"name" db:"name"`
	Laboratory          string  `json:"brand_lab" db:"laboratory"`
	RetailPriceWithTax  float64 `json:"price_with_tax" db:"price_with_tax"`
	TVAPercentage       float64 `json:"tva_percentage" db:"tva_percentage"`
	WeightedAverageCost float64 `json:"weighted_average_price" db:"weighted_average_price"`
	GroupAvgPrice       float64 `json:"group_avg_price" db:"group_avg_price"`
	CurrentStock        int     `json:"current_stock" db:"current_stock"`
	SoldQuantity        int     `json:"sold_quantity" db:"sold_quantity"`
}

// SegmentSalesRow is one sell-out aggregate per segment value
type SegmentSalesRow struct {
	Segment      string  `db:"segment"`
	Revenue      float64 `db:"revenue"`
	Margin       float64 `db:"margin"`
	Quantity     int     `db:"quantity"`
	ProductCount int     `db:"product_count"`
}

// SegmentPurchaseRow is one sell-in aggregate per segment value
type SegmentPurchaseRow struct {
	Segment          string  `db:"segment"`
	OrderedQuantity  int     `db:"ordered_quantity"`
	ReceivedQuantity int     `db:"received_quantity"`
	PurchaseAmount   float64 `db:"purchase_amount"`
}

// SegmentStockRow is the current stock position per segment value
type SegmentStockRow struct {
	Segment      string  `db:"segment"`
	StockUnits   int     `db:"stock_units"`
	StockValue   float64 `db:"stock_value"`
	ProductCount int     `db:"product_count"`
}
