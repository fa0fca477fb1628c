package entity

// DashboardStats summarises the marketplace for admins.
type DashboardStats struct {
	UsersByRole       map[Role]int64          `json:"users_by_role"`
	PendingLSPs       int64                   `json:"pending_lsps"`
	PendingContainers int64                   `json:"pending_containers"`
	BookingsByStatus  map[BookingStatus]int64 `json:"bookings_by_status"`
	OpenComplaints    int64                   `json:"open_complaints"`
	ActiveShipments   int64                   `json:"active_shipments"`
}
