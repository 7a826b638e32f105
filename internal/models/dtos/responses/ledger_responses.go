package responses

type RegisteredResponse struct {
	ID uint64 `json:"id"`
}

type TicketResponse struct {
	FlightID  uint64 `json:"flight_id"`
	SeatClass string `json:"seat_class"`
	SeatIndex int    `json:"seat_index"`
	Passenger string `json:"passenger"`
}

type AdminStateResponse struct {
	Owner        string `json:"owner"`
	InvitedAdmin string `json:"invited_admin,omitempty"`
}

type BalanceResponse struct {
	Account   string `json:"account"`
	Balance   uint64 `json:"balance"`
	Allowance uint64 `json:"allowance"`
}
