package predictor

import (
	"fmt"

	"cardiod/internal/clinical"
	"cardiod/internal/ecg"
	"cardiod/pkg/types"
)

// Model names and verdict strings as returned to clients.
const (
	ModelMLP      = "MLP (Clinical Data)"
	ModelECG      = "EfficientNet-B3 (CNN)"
	ModelCombined = "Hybrid Analysis"

	DiseasePresent    = "Heart Disease Present"
	DiseaseNotPresent = "Heart Disease Not Present"
	ECGAbnormal       = "Abnormal ECG Detected"
	ECGNormal         = "Normal ECG"

	HighRisk = "High Risk"
	Normal   = "Normal"
	Abnormal = "Abnormal"

	DriverECG      = "ECG Image Analysis"
	DriverClinical = "Clinical Data (MLP)"
)

func percent(v float64) string     { return fmt.Sprintf("%.2f%%", v) }
func probability(p float64) string { return fmt.Sprintf("%.4f", p) }

func clinicalResponse(r clinical.Result) types.MLPResponse {
	pred := DiseaseNotPresent
	if r.Abnormal {
		pred = DiseasePresent
	}
	return types.MLPResponse{
		Model:          ModelMLP,
		Prediction:     pred,
		Confidence:     percent(r.Confidence()),
		RawProbability: probability(r.Probability),
	}
}

func ecgResponse(r ecg.Result) types.ECGResponse {
	pred := ECGNormal
	if r.Abnormal {
		pred = ECGAbnormal
	}
	return types.ECGResponse{
		Model:          ModelECG,
		Prediction:     pred,
		Confidence:     percent(r.Confidence()),
		RawProbability: probability(r.Probability),
	}
}

// ecgHybridConfidence rescales the ECG probability around its threshold so
// it is comparable with the clinical confidence: 50 at the threshold, 100 at
// either extreme.
func ecgHybridConfidence(p float64) float64 {
	if p > ecg.Threshold {
		return 50 + (p-ecg.Threshold)/(1-ecg.Threshold)*50
	}
	return 100 - (p/ecg.Threshold)*50
}

// arbitrate picks the more confident model; ties go to the ECG.
func arbitrate(c clinical.Result, e ecg.Result) types.CombinedResponse {
	cm := c.Confidence()
	ce := ecgHybridConfidence(e.Probability)

	details := types.CombinedDetails{
		MLPContribution: Normal,
		MLPConfidence:   percent(cm),
		CNNContribution: Normal,
		CNNConfidence:   percent(ce),
	}
	if c.Abnormal {
		details.MLPContribution = HighRisk
	}
	if e.Abnormal {
		details.CNNContribution = Abnormal
	}

	resp := types.CombinedResponse{Model: ModelCombined, Details: details}
	if ce >= cm {
		resp.PrimaryDriver = DriverECG
		resp.FinalDiagnosis = riskLabel(e.Abnormal)
		resp.OverallConfidence = percent(ce)
	} else {
		resp.PrimaryDriver = DriverClinical
		resp.FinalDiagnosis = riskLabel(c.Abnormal)
		resp.OverallConfidence = percent(cm)
	}
	return resp
}

func riskLabel(abnormal bool) string {
	if abnormal {
		return HighRisk
	}
	return Normal
}
