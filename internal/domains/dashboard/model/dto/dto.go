package dto

// StatsResponse is the admin dashboard summary.
type StatsResponse struct {
	TotalRooms        int     `json:"total_rooms"`
	AvailableRooms    int     `json:"available_rooms"`
	TotalBookings     int     `json:"total_bookings"`
	PendingBookings   int     `json:"pending_bookings"`
	ConfirmedBookings int     `json:"confirmed_bookings"`
	TotalRevenue      float64 `json:"total_revenue"`
}
