package models

import "time"

// AnalysisResult is the outcome of analyzing one source.
// Exactly one of Info and Err is set.
type AnalysisResult struct {
	ID             string        `json:"id"`
	Source         string        `json:"source"`
	Driver         string        `json:"driver,omitempty"`
	Timestamp      time.Time     `json:"timestamp"`
	ProcessingTime time.Duration `json:"processing_time"`
	Info           *ImageInfo    `json:"info,omitempty"`
	Err            error         `json:"-"`
}

// Response converts a successful result into its transport form.
func (r *AnalysisResult) Response() *AnalysisResponse {
	resp := &AnalysisResponse{
		ID:                r.ID,
		Source:            r.Source,
		Timestamp:         r.Timestamp.UTC().Format(time.RFC3339),
		ProcessingTimeSec: r.ProcessingTime.Seconds(),
		Info:              r.Info,
	}
	if r.Info != nil {
		resp.RatioX = r.Info.RatioX()
		resp.RatioY = r.Info.RatioY()
	}
	return resp
}
