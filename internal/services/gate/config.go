package gate

import "strings"

// Config defines the inputs for the gate service.
type Config struct {
	HTTPAddr string
	// DatabaseURL selects the PostgreSQL backend when set; otherwise the
	// store is a SQLite file at DBPath.
	DatabaseURL string
	DBPath      string
	// AdminPassword guards the grant endpoint (x-admin-password header).
	AdminPassword string
	// UnlockPassword guards the admin unlock path. Falls back to
	// AdminPassword when empty; both are verified server-side only.
	UnlockPassword string
	// SupportURL is handed to rejected visitors during verification.
	SupportURL string
	// SelfHeal keeps the grant handler's best-effort schema bootstrap
	// enabled as a fallback for the deploy-time provisioning step.
	SelfHeal bool
}

// unlockSecret resolves the effective admin unlock secret.
func (c Config) unlockSecret() string {
	if secret := strings.TrimSpace(c.UnlockPassword); secret != "" {
		return secret
	}
	return strings.TrimSpace(c.AdminPassword)
}
