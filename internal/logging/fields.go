package logging

// Standardized attribute keys shared across pipeline stages.
const (
	FieldComponent = "component"
	FieldStage     = "stage"
	FieldJobID     = "job_id"
	FieldVideoID   = "video_id"
	FieldRequestID = "request_id"
	FieldEventType = "event_type"
	FieldErrorHint = "error_hint"
	FieldClipCount = "clip_count"
	FieldDuration  = "duration"
)
