package domain

import "time"

// StockItem is a single inventory entry owned by a shop.
type StockItem struct {
	ID           string    `json:"id"`
	ShopID       string    `json:"shop_id"`
	Name         string    `json:"name"`
	Category     string    `json:"category,omitempty"`
	Quantity     int       `json:"quantity"`
	UnitPrice    float64   `json:"unit_price"`
	LowStockAt   int       `json:"low_stock_at,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LowStock reports whether the quantity has fallen to the reorder threshold.
func (s StockItem) LowStock() bool {
	return s.LowStockAt > 0 && s.Quantity <= s.LowStockAt
}

// ReceiptItem is one line on a receipt.
type ReceiptItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Total returns the line total.
func (i ReceiptItem) Total() float64 {
	return float64(i.Quantity) * i.UnitPrice
}

// Receipt records a sale made by a shop. CreatedBy is the identity id of the
// owner, staff member or guest who created it.
type Receipt struct {
	ID            string        `json:"id"`
	ReceiptNumber string        `json:"receipt_number"`
	ShopID        string        `json:"shop_id"`
	CustomerName  string        `json:"customer_name,omitempty"`
	Items         []ReceiptItem `json:"items"`
	Total         float64       `json:"total"`
	CreatedBy     string        `json:"created_by"`
	CreatedAt     time.Time     `json:"created_at"`
}

// ExpenseCategory groups a shop's expenses.
type ExpenseCategory struct {
	ID        string    `json:"id"`
	ShopID    string    `json:"shop_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Expense is a single expense record for a shop.
type Expense struct {
	ID          string    `json:"id"`
	ShopID      string    `json:"shop_id"`
	CategoryID  string    `json:"category_id,omitempty"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	ExpenseDate time.Time `json:"expense_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PurchaseStatus tracks a supplier purchase through its lifecycle.
type PurchaseStatus string

const (
	PurchaseOrdered  PurchaseStatus = "ordered"
	PurchaseReceived PurchaseStatus = "received"
	PurchaseCanceled PurchaseStatus = "canceled"
)

// Purchase is a supplier order placed by a shop. When marked received it can
// top up the linked stock item.
type Purchase struct {
	ID           string         `json:"id"`
	ShopID       string         `json:"shop_id"`
	Supplier     string         `json:"supplier"`
	StockItemID  string         `json:"stock_item_id,omitempty"`
	ItemName     string         `json:"item_name"`
	Quantity     int            `json:"quantity"`
	UnitCost     float64        `json:"unit_cost"`
	Status       PurchaseStatus `json:"status"`
	PurchaseDate time.Time      `json:"purchase_date"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// AttendanceMark is the daily attendance value for a staff member.
type AttendanceMark string

const (
	AttendancePresent AttendanceMark = "present"
	AttendanceAbsent  AttendanceMark = "absent"
	AttendanceHalfDay AttendanceMark = "half_day"
)

// AttendanceRecord marks one staff member's attendance on one day.
// Date is stored as "2006-01-02".
type AttendanceRecord struct {
	ID        string         `json:"id"`
	ShopID    string         `json:"shop_id"`
	StaffID   string         `json:"staff_id"`
	Date      string         `json:"date"`
	Mark      AttendanceMark `json:"mark"`
	CreatedAt time.Time      `json:"created_at"`
}

// SalarySummary is the attendance-derived monthly pay for one staff member.
type SalarySummary struct {
	StaffID       string  `json:"staff_id"`
	StaffName     string  `json:"staff_name"`
	Month         string  `json:"month"`
	PresentDays   int     `json:"present_days"`
	HalfDays      int     `json:"half_days"`
	AbsentDays    int     `json:"absent_days"`
	MonthlyPay    float64 `json:"monthly_pay"`
	PayableSalary float64 `json:"payable_salary"`
}
