package dto

// DashboardDTO respuesta de GET /api/dashboard.
// branch_id vacío = vista de toda la empresa (admin).
type DashboardDTO struct {
	BranchID        string             `json:"branch_id,omitempty"`
	Branches        int                `json:"branches"`
	Products        int                `json:"products"`
	Documents       int                `json:"documents"`
	LowStock        int                `json:"low_stock"`
	RecentMovements []MovementResponse `json:"recent_movements"`
}
