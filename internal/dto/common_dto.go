package dto

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}

// WidgetDescriptor tells hosts where the widget lives and which tools render into it.
type WidgetDescriptor struct {
	URI      string   `json:"uri"`
	MIMEType string   `json:"mime_type"`
	HTMLURL  string   `json:"html_url"`
	Tools    []string `json:"tools"`
}
