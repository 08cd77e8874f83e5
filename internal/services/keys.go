package services

// Storage keys. Every value under these keys is JSON except the active
// session pointer, which is the raw session id.
const (
	planKey          = "unscroll_plan"
	sessionsKey      = "unscroll_sessions"
	reflectionsKey   = "unscroll_reflections"
	activeSessionKey = "unscroll_active_session"
	userStatsKey     = "unscroll_user_stats"
	negativeUsageKey = "unscroll_negative_usage"
	accountKey       = "unscroll_account"
	accountTokenKey  = "unscroll_account_token"
)

// allKeys lists every key the app owns, for the reset operation.
func allKeys() []string {
	return []string{
		planKey,
		sessionsKey,
		reflectionsKey,
		activeSessionKey,
		userStatsKey,
		negativeUsageKey,
		accountKey,
		accountTokenKey,
	}
}

// Remote mirror tables.
const (
	mirrorSessionsTable = "sessions"
	mirrorStatsTable    = "user_stats"
)
