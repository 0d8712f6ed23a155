package domain

// GeocodeResult - один результат внешнего геокодера
type GeocodeResult struct {
	Formatted   string      `json:"formatted"`
	Coordinates Coordinates `json:"coordinates"`
	Confidence  int         `json:"confidence"`
}
