package domain

const (
	RoleMember = "MEMBER"
	RoleAdmin  = "ADMIN"
)

const (
	NotifPointsAwarded        = "POINTS_AWARDED"
	NotifLevelUp              = "LEVEL_UP"
	NotifVerificationApproved = "VERIFICATION_APPROVED"
	NotifVerificationRejected = "VERIFICATION_REJECTED"
	NotifDBSExpiring          = "DBS_EXPIRING"
	NotifReferralJoined       = "REFERRAL_JOINED"
)

const (
	VerificationPending  = "PENDING"
	VerificationApproved = "APPROVED"
	VerificationRejected = "REJECTED"
)

// Leaderboard windows exposed by the API.
const (
	WindowAllTime = "all"
	WindowWeekly  = "weekly"
	WindowMonthly = "monthly"
)

const (
	SettingReferralPointsEnabled = "referral_points_enabled"
	SettingLeaderboardSize       = "leaderboard_size"
)

// SourceType values on point transactions: what kind of entity triggered the
// award.
const (
	SourceManual       = "MANUAL"
	SourceReferral     = "REFERRAL"
	SourceVerification = "VERIFICATION"
	SourceCheckin      = "CHECKIN"
)
