// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserNotFound       = "auth.user_not_found"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// User Management
	KeyUserProfileUpdated = "user.profile_updated"
	KeyUserNotFound       = "user.not_found"
	KeyUserSuspended      = "user.suspended"

	// Units
	KeyUnitRegistered      = "unit.registered"
	KeyUnitApproved        = "unit.approved"
	KeyUnitRejected        = "unit.rejected"
	KeyUnitNotFound        = "unit.not_found"
	KeyUnitNotApproved     = "unit.not_approved"
	KeyUnitAlreadyClaimed  = "unit.already_claimed"
	KeyUnitPendingApproval = "unit.pending_approval"

	// Permits
	KeyPermitSubmitted       = "permit.submitted"
	KeyPermitAdvanced        = "permit.advanced"
	KeyPermitApproved        = "permit.approved"
	KeyPermitRejected        = "permit.rejected"
	KeyPermitReset           = "permit.reset"
	KeyPermitNotFound        = "permit.not_found"
	KeyPermitTerminal        = "permit.terminal"
	KeyPermitMissingFields   = "permit.missing_fields"
	KeyPermitUnknownType     = "permit.unknown_type"
	KeyPermitDocumentAdded   = "permit.document_added"
	KeyPermitDocumentRemoved = "permit.document_removed"

	// Rewards
	KeyRewardClaimed            = "reward.claimed"
	KeyRewardNotFound           = "reward.not_found"
	KeyRewardOutOfStock         = "reward.out_of_stock"
	KeyRewardInsufficientPoints = "reward.insufficient_points"
	KeyRewardClaimUsed          = "reward.claim_used"
	KeyRewardClaimExpired       = "reward.claim_expired"
	KeyRewardClaimCancelled     = "reward.claim_cancelled"
	KeyRewardClaimNotFound      = "reward.claim_not_found"

	// Payments
	KeyPaymentSuccess       = "payment.success"
	KeyPaymentFailed        = "payment.failed"
	KeyPaymentPending       = "payment.pending"
	KeyPaymentInvalidAmount = "payment.invalid_amount"
	KeyPaymentNotFound      = "payment.not_found"

	// Notifications
	KeyNotificationNotFound = "notification.not_found"
	KeyNotificationRead     = "notification.read"

	// Catalog
	KeyPropertyNotFound    = "property.not_found"
	KeyEventNotFound       = "event.not_found"
	KeyDestinationNotFound = "destination.not_found"

	// Uploads
	KeyUploadTooLarge         = "upload.too_large"
	KeyUploadBadType          = "upload.bad_type"
	KeyUploadFailed           = "upload.failed"
	KeyUploadChecksumMismatch = "upload.checksum_mismatch"

	// Admin
	KeyAdminActionSuccess = "admin.action_success"
	KeyAdminAccessDenied  = "admin.access_denied"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"
	KeyValidationTooShort = "validation.too_short"
	KeyValidationTooLong  = "validation.too_long"
	KeyValidationEmail    = "validation.invalid_email"
	KeyValidationPassword = "validation.invalid_password"
	KeyValidationNIK      = "validation.invalid_nik"
)
