package common

// TokenHeaderName carries the session token on authenticated requests.
const TokenHeaderName = "X-Token"

// SessionKeyPrefix namespaces session tokens inside the expiring cache.
const SessionKeyPrefix = "auth_"

// RootParentID is the parent value of entries that live at the top level.
const RootParentID int64 = 0

// PageSize is the fixed number of entries returned per listing page.
const PageSize = 20
