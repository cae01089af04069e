// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserNotFound       = "auth.user_not_found"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAuthPinUpdated         = "auth.pin_updated"
	KeyAuthPinInvalid         = "auth.pin_invalid"

	// Admin
	KeyAdminAccessDenied      = "admin.access_denied"
	KeyAdminCommissionApproved = "admin.commission_approved"
	KeyAdminAccessGranted     = "admin.access_granted"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Catalog
	KeyCategoryCreated  = "category.created"
	KeyCategoryDeleted  = "category.deleted"
	KeyCategoryNotFound = "category.not_found"
	KeyProductCreated   = "product.created"
	KeyProductUpdated   = "product.updated"
	KeyProductDeleted   = "product.deleted"
	KeyProductNotFound  = "product.not_found"
	KeyServiceCreated   = "service.created"
	KeyServiceUpdated   = "service.updated"
	KeyServiceDeleted   = "service.deleted"
	KeyServiceNotFound  = "service.not_found"

	// Customers and collaborators
	KeyCustomerCreated      = "customer.created"
	KeyCustomerUpdated      = "customer.updated"
	KeyCustomerDeleted      = "customer.deleted"
	KeyCustomerNotFound     = "customer.not_found"
	KeyCollaboratorCreated  = "collaborator.created"
	KeyCollaboratorUpdated  = "collaborator.updated"
	KeyCollaboratorDeleted  = "collaborator.deleted"
	KeyCollaboratorNotFound = "collaborator.not_found"

	// Sales
	KeySaleCreated  = "sale.created"
	KeySaleUpdated  = "sale.updated"
	KeySaleNotFound = "sale.not_found"

	// Promotions
	KeyPromotionCreated  = "promotion.created"
	KeyPromotionDeleted  = "promotion.deleted"
	KeyPromotionNotFound = "promotion.not_found"

	// Finance
	KeyTransactionCreated  = "transaction.created"
	KeyTransactionDeleted  = "transaction.deleted"
	KeyTransactionNotFound = "transaction.not_found"

	// Billing
	KeySubscriptionNotFound = "subscription.not_found"
	KeySubscriptionUpdated  = "subscription.updated"
	KeyReferralNotFound     = "referral.not_found"
	KeyCheckoutFailed       = "billing.checkout_failed"

	// Storage
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"

	// Settings
	KeySettingsUpdated = "settings.updated"
)
