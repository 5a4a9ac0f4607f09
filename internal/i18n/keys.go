// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthEmailUsed          = "auth.email_used"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// Authorization
	KeyAccessDenied     = "access.denied"
	KeyAccessNotOwner   = "access.not_owner"
	KeyAccessRoleTooLow = "access.role_too_low"

	// Users
	KeyUserNotFound = "user.not_found"
	KeyUserUpdated  = "user.updated"
	KeyUserDeleted  = "user.deleted"
	KeyUserVerified = "user.verified"

	// Products
	KeyProductCreated       = "product.created"
	KeyProductNotFound      = "product.not_found"
	KeyProductApproved      = "product.approved"
	KeyProductDeleted       = "product.deleted"
	KeyProductNotPromotable = "product.not_promotable"

	// Affiliate
	KeyAffiliateLinkCreated = "affiliate.link_created"
	KeyAffiliateNotFound    = "affiliate.not_found"

	// Orders
	KeyOrderCreated    = "order.created"
	KeyOrderNotFound   = "order.not_found"
	KeyOrderMarkedPaid = "order.marked_paid"
	KeyOrderEmptyItems = "order.empty_items"

	// Campaigns
	KeyCampaignCreated       = "campaign.created"
	KeyCampaignNotFound      = "campaign.not_found"
	KeyCampaignApplied       = "campaign.applied"
	KeyCampaignAlreadyTaken  = "campaign.already_taken"
	KeyCampaignEngagementAdd = "campaign.engagement_recorded"

	// Reviews
	KeyReviewCreated      = "review.created"
	KeyReviewNotPurchased = "review.not_purchased"

	// Payments
	KeyPaymentSuccess = "payment.success"
	KeyPaymentFailed  = "payment.failed"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// File Upload
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
	KeyFileInvalidType   = "file.invalid_type"
	KeyFileTooLarge      = "file.too_large"
)
