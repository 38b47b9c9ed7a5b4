package handler

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"activityapp/internal/adapter/http/middleware"
	"activityapp/internal/core/port"
	. "activityapp/pkg/tracing"
)

func startSpan(c *gin.Context, name string) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("handler.operation", name),
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	}

	if userID := middleware.CurrentUserID(c); userID != 0 {
		attrs = append(attrs, attribute.Int("user.id", userID))
	}

	return CreateChildSpan(c.Request.Context(), "handler."+name, attrs)
}

// readUpload returns nil when the request is not multipart or the field is absent. The caller closes
// the returned file.
func readUpload(c *gin.Context, field string) (*port.Upload, multipart.File, error) {
	header, err := c.FormFile(field)

	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil, nil
		}

		return nil, nil, err
	}

	file, err := header.Open()

	if err != nil {
		return nil, nil, err
	}

	return &port.Upload{
		Filename: header.Filename,
		Size:     header.Size,
		Content:  file,
	}, file, nil
}
