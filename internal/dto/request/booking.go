package request

type RescheduleBookingRequest struct {
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	TimeWindow string `json:"time" validate:"required"`
}
