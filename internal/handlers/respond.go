package handlers

import (
	"net/http"
	"produce_manager/internal/apperrors"

	"github.com/gin-gonic/gin"
)

// respondError maps the error taxonomy onto HTTP status codes: not-found to
// 404, validation and state guards to 400, conflicts to 409, anything
// unclassified (store failures) to 500.
func respondError(c *gin.Context, err error) {
	switch apperrors.KindOf(err) {
	case apperrors.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case apperrors.KindValidation, apperrors.KindInvalidState:
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case apperrors.KindConflict:
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	}
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
}
