package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"boardpulse/internal/domain/entity"
	"boardpulse/internal/handler/http/dto"
)

// ErrorHandler centralizes error handling for HTTP responses
func ErrorHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{Error: message})
}

// SuccessHandler centralizes success responses
func SuccessHandler(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// MessageHandler centralizes message responses
func MessageHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.MessageResponse{Message: message})
}

// BindAndValidate binds JSON request and validates it
func BindAndValidate(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		ErrorHandler(c, http.StatusBadRequest, err.Error())
		return err
	}
	return nil
}

// contentRefFromParams parses the :type and :id route params into a
// ContentRef, writing the error response itself on failure.
func contentRefFromParams(c *gin.Context) (entity.ContentRef, bool) {
	contentType, err := entity.ParseContentType(c.Param("type"))
	if err != nil {
		ErrorHandler(c, http.StatusBadRequest, "content type must be notice or community")
		return entity.ContentRef{}, false
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ErrorHandler(c, http.StatusBadRequest, "content id must be a positive integer")
		return entity.ContentRef{}, false
	}
	return entity.ContentRef{Type: contentType, ID: id}, true
}
