package dsr

import "time"

type Status string

const (
	StatusCompleted           Status = "completed"
	StatusPendingVerification Status = "pending_verification"
)

const (
	CategoryPersonalInfo       = "personal_info"
	CategoryPreferences        = "preferences"
	CategoryTransactionHistory = "transaction_history"
)

const (
	FieldEmail = "email"
	FieldPhone = "phone"
)

const MethodSecureDeletion = "secure_deletion"

// AccessResponseTarget is the promised turnaround for access requests.
const AccessResponseTarget = 72 * time.Hour

// DisplayHashLength is how many hex characters of a verification hash are shown to people.
const DisplayHashLength = 16
