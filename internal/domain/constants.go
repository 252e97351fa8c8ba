package domain

const (
	RoleUser   = "user"
	RoleAdmin  = "admin"
	RoleShoper = "shoper"
)

// Badge tiers, in ascending royalty order.
const (
	BadgeNone     = "NONE"
	BadgeSilver   = "SILVER"
	BadgeGolden   = "GOLDEN"
	BadgePlatinum = "PLATINUM"
	BadgeDiamond  = "DIAMOND"
)

// Point transaction types. Every balance mutation leaves one of these
// in the point_transactions table.
const (
	TxClubCreationSpend   = "CLUB_CREATION_SPEND"
	TxReferralTeamIncome  = "REFERRAL_TEAM_INCOME"
	TxReferralClubIncome  = "REFERRAL_CLUB_INCOME"
	TxReferralSignupBonus = "REFERRAL_SIGNUP_BONUS"
	TxClubBonus           = "CLUB_BONUS"
	TxRoyaltyDaily        = "ROYALTY_DAILY"
	TxTransferIn          = "TRANSFER_IN"
	TxTransferOut         = "TRANSFER_OUT"
	TxShoperFeeEarned     = "SHOPER_FEE_EARNED"
	TxManual              = "MANUAL"
)

const (
	WithdrawStatusPending   = "PENDING"
	WithdrawStatusCompleted = "COMPLETED"
	WithdrawStatusRejected  = "REJECTED"
)

const (
	// ClubCost is the deposit needed to open one club.
	ClubCost = 100.0
	// MaxClubsPerUser is the hard per-user club cap.
	MaxClubsPerUser = 50

	// Bonus series: thresholds grow by SeriesGrowth from the club's
	// serial number, payouts double per step, at most MaxBonusSteps
	// steps per club.
	MaxBonusSteps   = 13
	BonusMultiplier = 200.0
	SeriesGrowth    = 3

	// ReferralMaxDepth bounds the referredBy chain walk.
	ReferralMaxDepth = 4

	// DailyClubIncomeRate is the passive income per club per day.
	DailyClubIncomeRate = 0.1
	// RoyaltyDailyFactor multiplies the badge royalty base per day.
	RoyaltyDailyFactor = 4

	// WithdrawFeeRate is deducted from every withdrawal.
	WithdrawFeeRate = 0.05
	// ShoperFeeRate is the commission a shoper earns on deposits
	// routed to plain users.
	ShoperFeeRate = 0.02

	SecondsPerDay = 86400
)

// ReferralLevelBonus pays ancestors by level, closest first.
var ReferralLevelBonus = [ReferralMaxDepth]float64{40, 20, 10, 5}

// RoyaltyTable is the daily royalty base per badge tier.
var RoyaltyTable = map[string]float64{
	BadgeNone:     0,
	BadgeSilver:   110,
	BadgeGolden:   440,
	BadgePlatinum: 1760,
	BadgeDiamond:  7040,
}
