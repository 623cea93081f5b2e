package globals

// Context keys
type ContextKey string

const SessionIDKey ContextKey = "sessionId"

// ShopName is shown in page headers and on pickup slips.
const ShopName = "Sweet Cupcake Shop"
