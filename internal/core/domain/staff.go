package domain

import "time"

// StaffRecord is a staff member employed by a shop. IdentityID links the
// record to the credential the staff member signs in with.
type StaffRecord struct {
	ID          string        `json:"id"`
	ShopID      string        `json:"shop_id"`
	IdentityID  string        `json:"identity_id"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	RoleLabel   string        `json:"role_label,omitempty"`
	Permissions PermissionSet `json:"permissions"`
	MonthlyPay  float64       `json:"monthly_pay,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
