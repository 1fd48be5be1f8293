package models

// Profile is a person known to the platform. Accounts and sign-in live with
// the hosted auth provider; a profile only carries what the ledger needs.
type Profile struct {
	// ID is the profile identifier. For signed-in users it equals the token subject.
	ID string

	// DisplayName is shown next to balances and transfers.
	DisplayName string

	// UPIID is the payee virtual payment address (e.g. "asha@okbank"), optional.
	UPIID string

	// CreatedAt is the Unix timestamp when the profile was created.
	CreatedAt int64
}
