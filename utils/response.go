package utils

import "github.com/gin-gonic/gin"

// JSONError writes the {success:false, message} shape every user-facing
// endpoint returns on failure.
func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "message": message})
}
