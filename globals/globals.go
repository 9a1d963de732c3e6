package globals

import (
	"context"
)

// Context keys
type ContextKey string

const TokenKey ContextKey = "token"

var Ctx = context.Background()
