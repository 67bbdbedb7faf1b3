package quota

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"scriptgen-backend/models"
)

// DenialKind tells the caller WHY a check denied, without them having to
// parse the reason string. "internal" means the store misbehaved and we
// denied to be safe, which is not the same as being over quota.
type DenialKind string

const (
	DenialNone            DenialKind = ""
	DenialUserNotFound    DenialKind = "user_not_found"
	DenialNoPolicy        DenialKind = "no_policy"
	DenialFeatureDisabled DenialKind = "feature_disabled"
	DenialOverLimit       DenialKind = "over_limit"
	DenialInternal        DenialKind = "internal"
)

// Result of a quota evaluation. Pure read: nothing is written, nothing is
// reserved. The caller must check Allowed BEFORE running the metered action.
type Result struct {
	Allowed      bool       `json:"allowed"`
	CurrentUsage int        `json:"current_usage"`
	Limit        int        `json:"limit"`
	Kind         DenialKind `json:"kind,omitempty"`
	Reason       string     `json:"reason,omitempty"`
}

// monthStart returns the first instant of the calendar month containing now.
// The accounting period is open-ended: month start up to "now".
func monthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// Evaluate decides whether user may run feature right now. Every failure mode
// denies (user missing, no policy, feature not in plan, DB down) — we never
// fail open on quota.
func Evaluate(db *gorm.DB, userID uint, feature Feature) Result {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Result{Kind: DenialUserNotFound, Reason: "user not found"}
		}
		return internalDeny(err)
	}

	// One policy set per tier. Zero rows means the tier was never seeded,
	// which is a config problem, not a user problem — still deny.
	var policies []models.UsageQuota
	if err := db.Where("tier = ?", user.Tier).Find(&policies).Error; err != nil {
		return internalDeny(err)
	}
	if len(policies) == 0 {
		return Result{Kind: DenialNoPolicy, Reason: "no quota configuration for your plan"}
	}

	var policy *models.UsageQuota
	for i := range policies {
		if policies[i].Feature == string(feature) {
			policy = &policies[i]
			break
		}
	}
	// Disabled (or absent) beats any count check.
	if policy == nil || !policy.Enabled {
		return Result{Kind: DenialFeatureDisabled, Reason: "feature not available in your plan"}
	}

	// Only successful attempts count against the ceiling. Failed ones are
	// logged but free.
	count, err := CountThisMonth(db, userID, feature)
	if err != nil {
		return internalDeny(err)
	}

	res := Result{
		CurrentUsage: count,
		Limit:        policy.MonthlyLimit,
		Allowed:      count < policy.MonthlyLimit,
	}
	if !res.Allowed {
		res.Kind = DenialOverLimit
		res.Reason = fmt.Sprintf("monthly limit of %d %s generations reached, resets next month", policy.MonthlyLimit, feature)
	}
	return res
}

// internalDeny is the fail-closed path for storage trouble. The reason is
// deliberately generic; driver detail goes to the operational log only.
func internalDeny(err error) Result {
	log.Printf("quota evaluation failed, denying: %v", err)
	return Result{Kind: DenialInternal, Reason: "quota check unavailable, please try again later"}
}

// CountThisMonth returns the successful-use count for one user and feature
// in the current accounting period.
func CountThisMonth(db *gorm.DB, userID uint, feature Feature) (int, error) {
	var count int64
	err := db.Model(&models.UsageLog{}).
		Where("user_id = ? AND feature = ? AND success = ? AND created_at >= ?",
			userID, string(feature), true, monthStart(time.Now())).
		Count(&count).Error
	return int(count), err
}

// MonthlyUsage returns the successful-use count per feature for the current
// month, plus the user's limits. Feeds the profile endpoint.
func MonthlyUsage(db *gorm.DB, userID uint) (map[Feature]Result, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return nil, err
	}

	var policies []models.UsageQuota
	if err := db.Where("tier = ?", user.Tier).Find(&policies).Error; err != nil {
		return nil, err
	}
	byFeature := make(map[string]models.UsageQuota, len(policies))
	for _, p := range policies {
		byFeature[p.Feature] = p
	}

	type row struct {
		Feature string
		N       int64
	}
	var rows []row
	err := db.Model(&models.UsageLog{}).
		Select("feature, COUNT(*) as n").
		Where("user_id = ? AND success = ? AND created_at >= ?", userID, true, monthStart(time.Now())).
		Group("feature").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Feature] = r.N
	}

	out := make(map[Feature]Result, len(AllFeatures))
	for _, f := range AllFeatures {
		p, ok := byFeature[string(f)]
		if !ok || !p.Enabled {
			out[f] = Result{Kind: DenialFeatureDisabled}
			continue
		}
		n := int(counts[string(f)])
		out[f] = Result{
			Allowed:      n < p.MonthlyLimit,
			CurrentUsage: n,
			Limit:        p.MonthlyLimit,
		}
	}
	return out, nil
}
