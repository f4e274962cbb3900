package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/instantshare/relay/internal/observability"
	"github.com/instantshare/relay/internal/session"
	"github.com/instantshare/relay/pkg/types"
)

// handleCreateSession mints a session under an auto-generated code
func handleCreateSession(registry *session.Registry, metrics *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		code, err := registry.Create()
		if err != nil {
			abortWithError(c, err)
			return
		}

		metrics.SessionsCreated.WithLabelValues("auto").Inc()
		metrics.ActiveSessions.Set(float64(registry.Len()))

		c.JSON(http.StatusOK, types.SessionResponse{SessionID: code})
	}
}

// handleCreateSessionWithCode registers a session under a client-chosen code
func handleCreateSessionWithCode(registry *session.Registry, metrics *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.CreateSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, types.APIResponse{
				Success: false,
				Error:   "sessionId is required",
			})
			return
		}

		if err := registry.CreateWithCode(req.SessionID); err != nil {
			abortWithError(c, err)
			return
		}

		metrics.SessionsCreated.WithLabelValues("explicit").Inc()
		metrics.ActiveSessions.Set(float64(registry.Len()))

		c.JSON(http.StatusOK, types.SessionResponse{SessionID: req.SessionID})
	}
}

// handleDescribeSession returns a session's file listing without payloads
func handleDescribeSession(registry *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, err := registry.Describe(c.Param("sessionId"))
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, info)
	}
}

// handleUpload accepts a file into a session, creating the session on
// the fly when implicit sessions are enabled
func handleUpload(registry *session.Registry, metrics *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.UploadRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, types.APIResponse{
				Success: false,
				Error:   "fileName and fileData are required",
			})
			return
		}

		meta, created, err := registry.AddFile(c.Param("sessionId"), session.FileInput{
			Name:       req.FileName,
			MimeType:   req.FileType,
			Size:       req.FileSize,
			Data:       req.FileData,
			UploadedBy: req.ClientID,
		})
		if err != nil {
			abortWithError(c, err)
			return
		}

		metrics.Uploads.Inc()
		metrics.UploadBytes.Add(float64(meta.Size))
		if created {
			metrics.SessionsCreated.WithLabelValues("implicit").Inc()
			metrics.ActiveSessions.Set(float64(registry.Len()))
		}

		c.JSON(http.StatusOK, types.UploadResponse{Success: true, File: meta})
	}
}

// handleFetchFile streams one file's payload back with its stored media
// type and an attachment disposition keyed to the stored name
func handleFetchFile(registry *session.Registry, metrics *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := registry.GetFile(c.Param("sessionId"), c.Param("fileId"))
		if err != nil {
			abortWithError(c, err)
			return
		}

		metrics.Fetches.Inc()

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
		c.Data(http.StatusOK, file.MimeType, file.Payload)
	}
}

// abortWithError maps registry errors onto HTTP statuses
func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, session.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, session.ErrBadFormat),
		errors.Is(err, session.ErrTooLarge),
		errors.Is(err, session.ErrDecodeFailure):
		status = http.StatusBadRequest
	case errors.Is(err, session.ErrCodeInUse):
		status = http.StatusConflict
	case errors.Is(err, session.ErrExhaustedRetries):
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, types.APIResponse{Success: false, Error: err.Error()})
}
