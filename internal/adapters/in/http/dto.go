package http

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type ApproveOrderRequest struct {
	ReservationID string `json:"reservationId"`
}

type Place struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type NewReservation struct {
	VehicleID     string   `json:"vehicleId"`
	Date          string   `json:"date"`
	StartTime     string   `json:"startTime"`
	Fee           int64    `json:"fee"`
	RequiredHours float64  `json:"requiredHours"`
	DistanceKm    *float64 `json:"distanceKm,omitempty"`
	Source        Place    `json:"source"`
	Destination   Place    `json:"destination"`
}

type NewDriver struct {
	VehicleID string `json:"vehicleId"`
}

type Created struct {
	ID string `json:"id"`
}

type Order struct {
	ID                string `json:"id"`
	SrcSimpleAddress  string `json:"srcSimpleAddress"`
	DstSimpleAddress  string `json:"dstSimpleAddress"`
	TransportDatetime string `json:"transportDatetime"`
	Fee               int64  `json:"fee"`
}

type OrderPage struct {
	Orders   []Order `json:"orders"`
	LastPage bool    `json:"lastPage"`
}
