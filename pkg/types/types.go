package types

import "time"

// FileMeta describes an uploaded file without its payload, so listing
// responses stay small.
type FileMeta struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Size       int64     `json:"size"`
	UploadedBy string    `json:"uploadedBy"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// SessionInfo describes a session and the files uploaded under it
type SessionInfo struct {
	SessionID string     `json:"sessionId"`
	FileCount int        `json:"fileCount"`
	Files     []FileMeta `json:"files"`
}

// CreateSessionRequest is the body for creating a session with a
// client-chosen code
type CreateSessionRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

// SessionResponse is returned when a session is created
type SessionResponse struct {
	SessionID string `json:"sessionId"`
}

// UploadRequest is the body for uploading a file into a session.
// FileData is either raw content or a self-describing data URL
// (data:<mime>;base64,<payload>).
type UploadRequest struct {
	FileName string `json:"fileName" binding:"required"`
	FileType string `json:"fileType"`
	FileSize int64  `json:"fileSize"`
	FileData string `json:"fileData" binding:"required"`
	ClientID string `json:"clientId"`
}

// UploadResponse is returned after a successful upload
type UploadResponse struct {
	Success bool     `json:"success"`
	File    FileMeta `json:"file"`
}

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}
