package clinical

import "cardiod/pkg/types"

// NumFeatures is the width of the engineered feature vector.
const NumFeatures = 14

// FeatureColumns is the column order the scaler and the network were fitted on.
var FeatureColumns = [NumFeatures]string{
	"gender", "weight", "ap_hi", "ap_lo",
	"cholesterol", "gluc", "smoke", "alco", "active",
	"age_years", "bmi", "pulse_pressure",
	"health_index", "cholesterol_gluc_interaction",
}

// Features is one engineered row in FeatureColumns order.
type Features [NumFeatures]float64

// Engineer derives the model inputs from a validated payload.
func Engineer(d types.ClinicalData) Features {
	age, height, weight := val(d.Age), val(d.Height), val(d.Weight)
	hi, lo := val(d.APHi), val(d.APLo)
	chol, gluc := val(d.Cholesterol), val(d.Gluc)
	smoke, alco, active := val(d.Smoke), val(d.Alco), val(d.Active)

	heightM := height / 100.0
	var bmi float64
	if heightM > 0 {
		bmi = weight / (heightM * heightM)
	}
	return Features{
		val(d.Gender), weight, hi, lo,
		chol, gluc, smoke, alco, active,
		age,
		bmi,
		hi - lo,
		active*1.0 - smoke*0.5 - alco*0.5,
		chol * gluc,
	}
}

func val(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
