package models

// Statistics is the aggregate view returned by GET /statistics
type Statistics struct {
	BestWinRatioCountry string  `json:"bestWinRatioCountry"`
	AverageIMC          float64 `json:"averageIMC"`
	MedianHeight        int     `json:"medianHeight"`
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
