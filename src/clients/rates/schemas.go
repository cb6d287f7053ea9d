package rates

// GetLatestResponse is the payload of the latest-rates endpoint, e.g.
// GET https://api.exchangerate-api.com/v4/latest/USD
type GetLatestResponse struct {
	Base        string             `json:"base"`
	Date        string             `json:"date"`
	TimeLastUpd int64              `json:"time_last_updated"`
	Rates       map[string]float64 `json:"rates"`
}
