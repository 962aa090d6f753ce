package utils

import "github.com/gin-gonic/gin"

// InternalErrorMessage is the only text a client sees for server failures.
const InternalErrorMessage = "Internal Server Error"

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONCreated(c *gin.Context, code int, id string) {
	c.JSON(code, gin.H{"success": true, "id": id})
}

func JSONError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"success": false, "message": message})
}

func JSONValidationError(c *gin.Context, code int, errs interface{}) {
	c.AbortWithStatusJSON(code, gin.H{"success": false, "errors": errs})
}

// JSONServerError hides detail unless exposeDetail is set.
func JSONServerError(c *gin.Context, code int, detail string, exposeDetail bool) {
	body := gin.H{"success": false, "message": InternalErrorMessage}
	if exposeDetail && detail != "" {
		body["error"] = detail
	}
	c.AbortWithStatusJSON(code, body)
}
