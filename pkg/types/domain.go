package types

// ClinicalData is the structured clinical payload accepted by the MLP and
// combined endpoints. Fields are pointers so a missing field can be told
// apart from a zero value (smoke=0 is valid, an absent smoke is not).
type ClinicalData struct {
	// Age in years.
	// example: 52
	Age *float64 `json:"age" validate:"required,integer,gte=1,lte=120" example:"52"`
	// 1 or 2.
	// example: 1
	Gender *float64 `json:"gender" validate:"required,integer,gte=1,lte=2" example:"1"`
	// Height in centimetres.
	// example: 168
	Height *float64 `json:"height" validate:"required,gte=100,lte=250" example:"168"`
	// Weight in kilograms.
	// example: 74.5
	Weight *float64 `json:"weight" validate:"required,gte=30,lte=300" example:"74.5"`
	// Systolic blood pressure.
	// example: 130
	APHi *float64 `json:"ap_hi" validate:"required,integer,gte=50,lte=250" example:"130"`
	// Diastolic blood pressure.
	// example: 85
	APLo *float64 `json:"ap_lo" validate:"required,integer,gte=30,lte=180" example:"85"`
	// 1 normal, 2 above normal, 3 well above normal.
	// example: 1
	Cholesterol *float64 `json:"cholesterol" validate:"required,integer,gte=1,lte=3" example:"1"`
	// 1 normal, 2 above normal, 3 well above normal.
	// example: 1
	Gluc *float64 `json:"gluc" validate:"required,integer,gte=1,lte=3" example:"1"`
	// example: 0
	Smoke *float64 `json:"smoke" validate:"required,integer,gte=0,lte=1" example:"0"`
	// example: 0
	Alco *float64 `json:"alco" validate:"required,integer,gte=0,lte=1" example:"0"`
	// example: 1
	Active *float64 `json:"active" validate:"required,integer,gte=0,lte=1" example:"1"`
}
