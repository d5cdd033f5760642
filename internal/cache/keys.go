package cache

import "fmt"

func PublicMenuKey(slug string) string {
	return fmt.Sprintf("menu:public:%s", slug)
}

// RateLimitKey scopes a counter by limiter name and caller, e.g. ("public", ip).
func RateLimitKey(scope, caller string) string {
	return fmt.Sprintf("ratelimit:%s:%s", scope, caller)
}
