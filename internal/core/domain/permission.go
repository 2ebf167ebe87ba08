package domain

// Permission names a single staff capability. The vocabulary is closed: new
// permissions require a code change, and unknown keys are rejected when
// parsing input.
type Permission string

const (
	PermCreateReceipts Permission = "canCreateReceipts"
	PermViewReceipts   Permission = "canViewReceipts"
	PermViewAnalytics  Permission = "canViewAnalytics"
	PermViewStock      Permission = "canViewStock"
	PermViewEmployees  Permission = "canViewEmployees"
	PermManageExpenses Permission = "canManageExpenses"
	PermMarkAttendance Permission = "canMarkAttendance"
)

// AllPermissions lists every known permission, in display order.
var AllPermissions = []Permission{
	PermCreateReceipts,
	PermViewReceipts,
	PermViewAnalytics,
	PermViewStock,
	PermViewEmployees,
	PermManageExpenses,
	PermMarkAttendance,
}

// Valid reports whether p belongs to the closed permission vocabulary.
func (p Permission) Valid() bool {
	switch p {
	case PermCreateReceipts, PermViewReceipts, PermViewAnalytics, PermViewStock,
		PermViewEmployees, PermManageExpenses, PermMarkAttendance:
		return true
	}
	return false
}

// PermissionSet maps each capability to an explicit flag. A fixed struct
// (rather than a free-form map) keeps unknown keys out of the data model.
type PermissionSet struct {
	CreateReceipts bool `json:"canCreateReceipts" bson:"canCreateReceipts"`
	ViewReceipts   bool `json:"canViewReceipts" bson:"canViewReceipts"`
	ViewAnalytics  bool `json:"canViewAnalytics" bson:"canViewAnalytics"`
	ViewStock      bool `json:"canViewStock" bson:"canViewStock"`
	ViewEmployees  bool `json:"canViewEmployees" bson:"canViewEmployees"`
	ManageExpenses bool `json:"canManageExpenses" bson:"canManageExpenses"`
	MarkAttendance bool `json:"canMarkAttendance" bson:"canMarkAttendance"`
}

// Has reports whether the set grants p. Unknown permissions are never granted.
func (ps PermissionSet) Has(p Permission) bool {
	switch p {
	case PermCreateReceipts:
		return ps.CreateReceipts
	case PermViewReceipts:
		return ps.ViewReceipts
	case PermViewAnalytics:
		return ps.ViewAnalytics
	case PermViewStock:
		return ps.ViewStock
	case PermViewEmployees:
		return ps.ViewEmployees
	case PermManageExpenses:
		return ps.ManageExpenses
	case PermMarkAttendance:
		return ps.MarkAttendance
	}
	return false
}

// FullPermissions is the implicit all-true set held by owners and admins.
func FullPermissions() PermissionSet {
	return PermissionSet{
		CreateReceipts: true,
		ViewReceipts:   true,
		ViewAnalytics:  true,
		ViewStock:      true,
		ViewEmployees:  true,
		ManageExpenses: true,
		MarkAttendance: true,
	}
}

// GuestPermissions is the single fixed capability granted to guest logins.
func GuestPermissions() PermissionSet {
	return PermissionSet{CreateReceipts: true}
}
