package usecases

// Auth messages
const (
	MsgLoggedIn             = "Admin logged in successfully"
	MsgLoggedOut            = "Admin logged out successfully"
	MsgOTPSent              = "OTP Sent On your Email address"
	MsgOTPVerified          = "OTP Verified successfully"
	MsgPasswordReset        = "Your Password Changed successfully"
	MsgPasswordChanged      = "Password changed successfully"
	msgInvalidCredentials   = "Invalid username or password"
	msgNotAuthorizedPage    = "You are not authorized to view this page"
	msgRoleIPDenied         = "Access denied: Unauthorized role and IP address combination."
	msgTokenOrRoleMissing   = "Authorization Token or Role ID not found"
	msgTokenNotValid        = "Authorization Token not valid."
	msgInvalidWallet        = "Invalid wallet address."
	msgInvalidSignature     = "Invalid signature."
	msgInvalidEmail         = "Invalid E-mail address."
	msgEmailNotExist        = "Email not exist"
	msgSomethingWentWrong   = "Something went wrong"
	msgPasswordMismatch     = "Password and confirm password do not match."
	msgTokenExpired         = "Token Expired."
	msgOldPasswordIncorrect = "Old password is incorrect."
	msgNewPasswordMissing   = "New password is missing"
	msgOldPasswordMissing   = "Old password is missing"
	msgConfirmMissing       = "Confirm password is missing"
	msgNonceTokenMissing    = "Temp token is missing"
	msgSignatureMissing     = "Signature is missing"
)

// Sub-admin messages
const (
	MsgSubAdminCreated   = "User has been created successfully"
	MsgSubAdminUpdated   = "User updated successfully"
	MsgSubAdminDeleted   = "User deleted successfully..."
	msgUserNotFound      = "User not found."
	msgUserAlreadyGone   = "User already Deleted"
	msgUsernameExists    = "Username already exists"
	msgNameMissingFirst  = "First name is missing"
	msgNameMissingLast   = "Last name is missing"
	msgUsernameMissing   = "Username is missing"
	msgPasswordMissing   = "Password is missing"
	msgIPAddressMissing  = "IP Address is missing"
	msgInvalidName       = "Please enter valid name."
	msgInvalidUsername   = "Please enter valid username."
	msgPermissionMissing = "Permissions are missing."
	msgPermissionInvalid = "Invalid permission data."
)

// User moderation messages
const (
	MsgKycApproved        = "User's KYC Approved successfully"
	MsgKycRejected        = "User's KYC Rejected successfully"
	MsgKycDeleted         = "User KYC deleted successfully..."
	MsgUserSuspended      = "User Status Suspended successfully"
	MsgUserActivated      = "User Status Activated successfully"
	MsgTwoFactorDisabled  = "User's Google 2FA Disabled successfully"
	MsgUserDeleted        = "User deleted successfully..."
	MsgSettingsUpdated    = "Users has been successfully updated."
	msgKycNotFound        = "KYC not found"
	msgKycAlreadyApproved = "User's KYC already Approved"
	msgKycAlreadyRejected = "User's KYC already Rejected"
	msgKycAlreadyDeleted  = "User's KYC already deleted"
	msgAlreadySuspended   = "User already suspended"
	msgAlreadyActive      = "User status already active"
	msgTwoFactorDisabled  = "This user's 2FA already disabled"
	msgInvalidPhone       = "Invalid Phone."
	msgInvalidCountry     = "Invalid country name."
	msgInvalidDialCode    = "Invalid country code."
	msgInvalidDOB         = "Invalid Date Of Birth."
	msgTransactionMissing = "Transaction not found"
)

// Report messages
const (
	msgOptionMissing   = "Filter option is missing"
	msgFromDateMissing = "From date is missing"
	msgToDateMissing   = "To date is missing"
	msgDateRange       = "From date must be before to date"
)

const (
	kycRejectNoReason  = "Reason not added"
	defaultPublicFName = "John"
	defaultPublicLName = "Doe"
)
