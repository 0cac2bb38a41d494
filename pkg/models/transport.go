package models

// AnalysisRequest represents a request for image metadata analysis.
// Source is a local path, an http(s) URL or an Azure blob URL.
type AnalysisRequest struct {
	Source string `json:"source" binding:"required"`
	Driver string `json:"driver,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// AnalysisResponse wraps an ImageInfo with request-level details
type AnalysisResponse struct {
	ID                string     `json:"id"`
	Source            string     `json:"source"`
	Timestamp         string     `json:"timestamp"`
	ProcessingTimeSec float64    `json:"processing_time_sec"`
	RatioX            float64    `json:"ratio_x"`
	RatioY            float64    `json:"ratio_y"`
	Info              *ImageInfo `json:"info"`
}

// DriverStatus reports whether a registered driver can be used in this process
type DriverStatus struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

// BatchAnalysisRequest asks for several sources to be analyzed with one driver choice
type BatchAnalysisRequest struct {
	Sources []string `json:"sources" binding:"required,min=1,max=50,dive,required"`
	Driver  string   `json:"driver,omitempty"`
}

// BatchItem holds either the analysis or the failure for one source
type BatchItem struct {
	Source string            `json:"source"`
	Result *AnalysisResponse `json:"result,omitempty"`
	Error  *ErrorResponse    `json:"error,omitempty"`
}

type BatchAnalysisResponse struct {
	Results   []BatchItem `json:"results"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
}
