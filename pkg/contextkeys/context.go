package contextkeys

// contextKey keeps our keys from colliding with other packages.
type contextKey string

// DBContextKey - *gorm.DB (pool or transaction) stored on the request
const DBContextKey = contextKey("db")

// Keys set by the auth middleware on gin.Context.
const (
	UserIDKey    = "userID"
	SessionIDKey = "sessionID"
)
