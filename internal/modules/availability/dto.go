package availability

type GenerateRangeRequest struct {
	From string `json:"from" binding:"required"` // YYYY-MM-DD
	To   string `json:"to" binding:"required"`
}

type ToggleSlotRequest struct {
	Date string `json:"date" binding:"required"`
	Hour *int   `json:"hour" binding:"required"`
}
