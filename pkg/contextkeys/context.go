package contextkeys

// contextKey is unexported so values set here never collide with other packages.
type contextKey string

const (
	// DBContextKey holds the *gorm.DB (pool or transaction) for the current request.
	DBContextKey = contextKey("db")

	// UserIDContextKey holds the authenticated user id established by the bearer middleware.
	UserIDContextKey = contextKey("user_id")
)
