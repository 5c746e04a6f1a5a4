package handler

type loginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// sectionFilters carries the filter controls of whichever section is being
// requested. Unused fields stay at their zero value; "all" and "" both mean
// the filter is off.
type sectionFilters struct {
	Status       string `query:"status"`
	Availability string `query:"availability" validate:"omitempty,oneof=all available unavailable"`
	Priority     string `query:"priority"     validate:"omitempty,oneof=all High Medium Low"`
	Customer     string `query:"customer"`
	Type         string `query:"type"         validate:"omitempty,oneof=all order maintenance"`
	Limit        int    `query:"limit"        validate:"omitempty,gt=0"`
}

type orderUpdateRequest struct {
	Status           string `form:"status"            validate:"required,oneof=Pending Processing Delivered"`
	PaymentStatus    string `form:"payment_status"    validate:"required,oneof=Pending Partial Paid"`
	ProductAvailable string `form:"product_available"`
}

type maintenanceUpdateRequest struct {
	Status    string `form:"status"     validate:"required,oneof=Pending 'In Progress' Completed"`
	Priority  string `form:"priority"   validate:"required,oneof=High Medium Low"`
	RiderName string `form:"rider_name"`
}
