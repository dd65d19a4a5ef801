package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes payload as the response body. Recommendation results, the parts
// catalog and user records all go out through here so success bodies stay
// unwrapped, matching the flat shape the wizard client decodes.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// OK writes a 200 response.
func OK(c *gin.Context, payload any) {
	JSON(c, http.StatusOK, payload)
}

// Created writes a 201 response for a newly stored record.
func Created(c *gin.Context, payload any) {
	JSON(c, http.StatusCreated, payload)
}
