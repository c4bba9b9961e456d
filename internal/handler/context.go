package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DoctorIDKey is where the auth middleware stores the authenticated
// doctor's ID on the request context.
const DoctorIDKey = "doctor_id"

func DoctorID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(DoctorIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
