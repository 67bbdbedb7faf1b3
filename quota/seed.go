package quota

import (
	"log"

	"gorm.io/gorm"

	"scriptgen-backend/models"
)

// Default per-tier policies. Limit 0 + Enabled false = feature not in plan.
// These are the shipped defaults; operators can tune rows in usage_quotas and
// a normal restart will NOT overwrite them (see SeedPolicies).
type policySeed struct {
	Limit   int
	Enabled bool
}

var defaultPolicies = map[string]map[Feature]policySeed{
	"free": {
		FeatureScript:      {Limit: 5, Enabled: true},
		FeatureHooks:       {Limit: 10, Enabled: true},
		FeatureTitles:      {Limit: 10, Enabled: true},
		FeatureOutline:     {Limit: 0, Enabled: false},
		FeatureDescription: {Limit: 0, Enabled: false},
		FeatureTags:        {Limit: 0, Enabled: false},
		FeatureThumbnail:   {Limit: 0, Enabled: false},
		FeatureCTAs:        {Limit: 0, Enabled: false},
	},
	"premium": {
		FeatureScript:      {Limit: 50, Enabled: true},
		FeatureHooks:       {Limit: 100, Enabled: true},
		FeatureTitles:      {Limit: 100, Enabled: true},
		FeatureOutline:     {Limit: 50, Enabled: true},
		FeatureDescription: {Limit: 50, Enabled: true},
		FeatureTags:        {Limit: 50, Enabled: true},
		FeatureThumbnail:   {Limit: 0, Enabled: false},
		FeatureCTAs:        {Limit: 0, Enabled: false},
	},
	"pro": {
		FeatureScript:      {Limit: 200, Enabled: true},
		FeatureHooks:       {Limit: 500, Enabled: true},
		FeatureTitles:      {Limit: 500, Enabled: true},
		FeatureOutline:     {Limit: 200, Enabled: true},
		FeatureDescription: {Limit: 200, Enabled: true},
		FeatureTags:        {Limit: 200, Enabled: true},
		FeatureThumbnail:   {Limit: 200, Enabled: true},
		FeatureCTAs:        {Limit: 200, Enabled: true},
	},
}

// SeedPolicies makes sure every (tier, feature) pair has a row. Insert-if-
// absent: re-running is idempotent and leaves operator-tuned limits alone.
// force=true overwrites existing rows with the shipped defaults — that is an
// explicit operator decision (QUOTA_FORCE_RESEED), never the default path.
func SeedPolicies(db *gorm.DB, force bool) error {
	for tier, features := range defaultPolicies {
		for _, feature := range AllFeatures {
			seed, ok := features[feature]
			if !ok {
				continue
			}

			row := models.UsageQuota{
				Tier:         tier,
				Feature:      string(feature),
				MonthlyLimit: seed.Limit,
				Enabled:      seed.Enabled,
			}

			if force {
				// Assign takes a map: a struct would skip zero values and
				// never be able to force Enabled back to false.
				err := db.Where("tier = ? AND feature = ?", tier, feature).
					Assign(map[string]interface{}{
						"tier":          tier,
						"feature":       string(feature),
						"monthly_limit": seed.Limit,
						"enabled":       seed.Enabled,
					}).
					FirstOrCreate(&models.UsageQuota{}).Error
				if err != nil {
					return err
				}
				continue
			}

			err := db.Where("tier = ? AND feature = ?", tier, feature).
				FirstOrCreate(&row).Error
			if err != nil {
				return err
			}
		}
	}
	log.Printf("quota policies seeded (%d tiers, force=%v)", len(defaultPolicies), force)
	return nil
}
