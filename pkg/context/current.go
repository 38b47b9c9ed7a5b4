package context

import (
	"context"
	"sync"
)

// Keys stored by the HTTP middlewares.
const (
	RequestIDKey = "request_id"
	UserIDKey    = "user_id"
	UserUUIDKey  = "user_uuid"
	IPAddressKey = "ip_address"
	UserAgentKey = "user_agent"
)

// Current holds request scoped values shared between middlewares, handlers and
// services.
type Current struct {
	mu   sync.RWMutex
	data map[string]interface{}
}

func NewCurrent() *Current {
	return &Current{
		data: make(map[string]interface{}),
	}
}

func (c *Current) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[key] = value
}

func (c *Current) Get(key string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.data[key]
}

func (c *Current) GetString(key string) (string, bool) {
	str, ok := c.Get(key).(string)
	return str, ok
}

func (c *Current) GetInt(key string) (int, bool) {
	i, ok := c.Get(key).(int)
	return i, ok
}

func (c *Current) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.data, key)
}

func (c *Current) Exists(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, exists := c.data[key]
	return exists
}

func (c *Current) All() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make(map[string]interface{}, len(c.data))

	for k, v := range c.data {
		result[k] = v
	}

	return result
}

type contextKey string

const currentKey contextKey = "current"

func WithCurrent(ctx context.Context, current *Current) context.Context {
	return context.WithValue(ctx, currentKey, current)
}

func FromContext(ctx context.Context) (*Current, bool) {
	current, ok := ctx.Value(currentKey).(*Current)
	return current, ok
}

// GetCurrent never returns nil; outside a request it returns an empty Current.
func GetCurrent(ctx context.Context) *Current {
	if current, ok := FromContext(ctx); ok {
		return current
	}

	return NewCurrent()
}

func RequestID(ctx context.Context) string {
	id, _ := GetCurrent(ctx).GetString(RequestIDKey)
	return id
}

func UserID(ctx context.Context) (int, bool) {
	return GetCurrent(ctx).GetInt(UserIDKey)
}
