package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// Context keys set by DeviceDetailsMiddleware.
const (
	ContextDeviceID = "deviceID"
	ContextFCMToken = "fcmToken"
	ContextDeviceIP = "deviceIP"
)

// DeviceDetailsMiddleware records the optional device headers the mobile app
// sends. The push token is used to notify the device once a schedule exists.
func DeviceDetailsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextDeviceID, strings.TrimSpace(c.GetHeader("X-Device-ID")))
		c.Set(ContextFCMToken, strings.TrimSpace(c.GetHeader("X-FCM-Token")))
		c.Set(ContextDeviceIP, getClientIP(c))
		c.Next()
	}
}
