package sanitize

// Body removes every request-body field not present in the whitelist, so that
// server-managed fields (roles, totals, timestamps) can never be injected
// through a write endpoint. An empty whitelist keeps the body untouched.
func Body(body map[string]any, whitelist []string) map[string]any {
	if len(whitelist) == 0 || body == nil {
		return body
	}
	allowed := make(map[string]struct{}, len(whitelist))
	for _, f := range whitelist {
		allowed[f] = struct{}{}
	}
	for key := range body {
		if _, ok := allowed[key]; !ok {
			delete(body, key)
		}
	}
	return body
}
