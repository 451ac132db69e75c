package booking

// QueryBookingsModel represents filter parameters for querying bookings.
type QueryBookingsModel struct {
	Ids         []int64 `json:"ids,omitempty"`
	CustomerIds []int64 `json:"customerIds,omitempty"`
	BookingDate string  `json:"bookingDate,omitempty"`
	Limit       int     `json:"limit,omitempty"`
	Offset      int     `json:"offset,omitempty"`
}
