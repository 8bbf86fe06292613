package predictor

import (
	"time"

	"cardiod/internal/artifacts"
	"cardiod/internal/ecg"
	"cardiod/pkg/types"
)

func artifactStatus(a artifacts.Artifact, loaded bool, loadErr error) types.ArtifactStatus {
	st := types.ArtifactStatus{
		Name:      a.Name,
		Path:      a.Path,
		Loaded:    loaded,
		SHA256:    a.SHA256,
		SizeBytes: a.Size,
	}
	if loadErr != nil {
		st.Error = loadErr.Error()
	}
	return st
}

func (m *models) artifactStatuses() []types.ArtifactStatus {
	if m == nil {
		return []types.ArtifactStatus{}
	}
	return []types.ArtifactStatus{
		artifactStatus(m.set.MLP, m.clinical != nil, m.mlpErr),
		artifactStatus(m.set.Scaler, m.clinical != nil && m.clinical.HasScaler(), m.scalerErr),
		artifactStatus(m.set.ECG, m.ecg != nil, m.ecgErr),
	}
}

// Status builds a detailed status response for /status.
func (s *Service) Status() types.StatusResponse {
	m, release := s.acquire()
	defer release()
	now := time.Now()
	resp := types.StatusResponse{
		State:            string(m.state()),
		Artifacts:        m.artifactStatuses(),
		ECGRuntime:       ecg.RuntimeBuilt,
		UptimeSeconds:    int64(now.Sub(s.startTime).Seconds()),
		ServerTimeUnix:   now.Unix(),
		ReloadsTotal:     s.reloads.Load(),
		PredictionsTotal: s.predictions.Load(),
		HistoryEnabled:   s.HistoryEnabled(),
	}
	if m != nil {
		resp.ECGCacheEntries = m.ecg.CacheLen()
	}
	return resp
}

// SanityReport summarises what a serve would be able to do with the current
// artifacts and binary.
type SanityReport struct {
	State      string                 `json:"state"`
	ECGRuntime bool                   `json:"ecg_runtime"`
	Artifacts  []types.ArtifactStatus `json:"artifacts"`
	// OK is true when every endpoint would be served.
	OK bool `json:"ok"`
}

// SanityCheck reports the loaded state without mutating it.
func (s *Service) SanityCheck() SanityReport {
	m, release := s.acquire()
	defer release()
	st := m.state()
	return SanityReport{
		State:      string(st),
		ECGRuntime: ecg.RuntimeBuilt,
		Artifacts:  m.artifactStatuses(),
		OK:         st == StateReady,
	}
}
