// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthAccountDeactivated = "auth.account_deactivated"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// Access control
	KeyAccessDenied       = "access.denied"
	KeyAccessShopOwner    = "access.shop_owner_required"
	KeyAccessAdmin        = "access.admin_required"
	KeyAccessNotShopOwner = "access.not_shop_owner"

	// Users
	KeyUserNotFound       = "user.not_found"
	KeyUserProfileUpdated = "user.profile_updated"
	KeyUserStatusUpdated  = "user.status_updated"

	// Shops
	KeyShopCreated    = "shop.created"
	KeyShopUpdated    = "shop.updated"
	KeyShopDeleted    = "shop.deleted"
	KeyShopNotFound   = "shop.not_found"
	KeyShopVerified   = "shop.verified"
	KeyShopFollowed   = "shop.followed"
	KeyShopUnfollowed = "shop.unfollowed"

	// Products
	KeyProductCreated  = "product.created"
	KeyProductUpdated  = "product.updated"
	KeyProductDeleted  = "product.deleted"
	KeyProductNotFound = "product.not_found"

	// Reviews
	KeyReviewCreated   = "review.created"
	KeyReviewDuplicate = "review.duplicate"
	KeyReviewNotFound  = "review.not_found"

	// Files
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"
)
