package middleware

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/NomadCrew/nomad-itinerary/errors"
	"github.com/NomadCrew/nomad-itinerary/logger"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON body written for a failed request.
type ErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Field   string `json:"field,omitempty"`
	Code    string `json:"code"`
}

// ErrorHandler renders the last error a handler attached with c.Error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		last := c.Errors.Last()
		err := last.Err

		var appError *errors.AppError
		if stderrors.As(err, &appError) {
			statusCode := appError.GetHTTPStatus()
			logger.LogHTTPError(c, err, statusCode, string(appError.Type)+" error")

			response := ErrorResponse{
				Type:    string(appError.Type),
				Message: appError.Message,
				Field:   appError.Field,
				Code:    strconv.Itoa(statusCode),
			}
			if appError.Detail != "" && (gin.IsDebugging() || exposesDetail(appError.Type)) {
				response.Details = appError.Detail
			}
			c.JSON(statusCode, response)
			return
		}

		if last.Type == gin.ErrorTypeBind || last.Type == gin.ErrorTypePublic {
			logger.LogHTTPError(c, err, http.StatusBadRequest, "Request error")
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Type:    string(errors.ValidationError),
				Message: err.Error(),
				Code:    strconv.Itoa(http.StatusBadRequest),
			})
			return
		}

		logger.LogHTTPError(c, err, http.StatusInternalServerError, "Unexpected server error")
		response := ErrorResponse{
			Type:    string(errors.ServerError),
			Message: "Internal Server Error",
			Code:    strconv.Itoa(http.StatusInternalServerError),
		}
		if gin.IsDebugging() {
			response.Details = err.Error()
		}
		c.JSON(http.StatusInternalServerError, response)
	}
}

// exposesDetail reports whether clients see the detail of an error type
// outside debug mode. Document errors name the offending field path.
func exposesDetail(t errors.ErrorType) bool {
	switch t {
	case errors.ValidationError, errors.NotFoundError,
		errors.RejectedError, errors.MissingFieldError, errors.WrongTypeError:
		return true
	}
	return false
}
