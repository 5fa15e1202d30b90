package markup

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	trustedPolicyOnce sync.Once
	trustedPolicy     *bluemonday.Policy
)

// Sanitize strips scripts, event handlers and unknown elements from raw
// markup before it is embedded as trusted HTML.
func Sanitize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(trustedSanitizer().Sanitize(trimmed))
}

func trustedSanitizer() *bluemonday.Policy {
	trustedPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("class", "role", "aria-hidden", "aria-live").Globally()
		trustedPolicy = policy
	})
	return trustedPolicy
}
