package points

// Category identifies the kind of action a point award rewards. The set is
// closed: once a transaction references a category it is never renamed or
// removed.
type Category string

const (
	CategoryHelpCompleted       Category = "help_completed"
	CategoryEmergencyHelp       Category = "emergency_help"
	CategoryRecurringHelp       Category = "recurring_help"
	CategoryDonation            Category = "donation"
	CategoryRecurringDonation   Category = "recurring_donation"
	CategoryMatchingDonation    Category = "matching_donation"
	CategoryProfileVerification Category = "profile_verification"
	CategoryCommunityEvent      Category = "community_event"
	CategoryEventAttendance     Category = "event_attendance"
	CategoryReferral            Category = "referral"
	CategoryDailyCheckin        Category = "daily_checkin"
)
