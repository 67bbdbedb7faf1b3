package quota

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"scriptgen-backend/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.UsageQuota{},
		&models.UsageLog{},
		&models.SavedScript{},
	))
	return db
}

func newFreeUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{Email: "creator@example.com", Tier: "free", Role: "user", SubscriptionStatus: "active"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestEvaluateUserNotFound(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, SeedPolicies(db, false))

	res := Evaluate(db, 9999, FeatureScript)

	assert.False(t, res.Allowed)
	assert.Equal(t, DenialUserNotFound, res.Kind)
}

func TestEvaluateNoPolicyForTier(t *testing.T) {
	db := newTestDB(t)
	// No seeding at all: the user's tier has zero policy rows.
	user := newFreeUser(t, db)

	res := Evaluate(db, user.ID, FeatureScript)

	assert.False(t, res.Allowed)
	assert.Equal(t, DenialNoPolicy, res.Kind)
}

func TestEvaluateFeatureDisabledBeatsCount(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, SeedPolicies(db, false))
	user := newFreeUser(t, db)

	// Outline is disabled on free no matter what the usage count says.
	res := Evaluate(db, user.ID, FeatureOutline)

	assert.False(t, res.Allowed)
	assert.Equal(t, DenialFeatureDisabled, res.Kind)
	assert.Contains(t, res.Reason, "not available")
}

func TestEvaluateUnderLimit(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, SeedPolicies(db, false))
	user := newFreeUser(t, db)

	for i := 0; i < 4; i++ {
		RecordUsage(db, user.ID, FeatureScript, true, 100, 500, "", nil)
	}

	res := Evaluate(db, user.ID, FeatureScript)

	assert.True(t, res.Allowed)
	assert.Equal(t, 4, res.CurrentUsage)
	assert.Equal(t, 5, res.Limit)
	assert.Equal(t, DenialNone, res.Kind)
}

func TestEvaluateAtLimitDeniesWithNumericReason(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, SeedPolicies(db, false))
	user := newFreeUser(t, db)

	// Free tier script limit is 5.
	for i := 0; i < 5; i++ {
		RecordUsage(db, user.ID, FeatureScript, true, 100, 500, "", nil)
	}

	res := Evaluate(db, user.ID, FeatureScript)

	assert.False(t, res.Allowed)
	assert.Equal(t, DenialOverLimit, res.Kind)
	assert.Equal(t, 5, res.CurrentUsage)
	assert.Contains(t, res.Reason, "5")
}

func TestEvaluateFailedAttemptsAreFree(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, SeedPolicies(db, false))
	user := newFreeUser(t, db)

	// Five failures and one success: only the success counts.
	for i := 0; i < 5; i++ {
		RecordUsage(db, user.ID, FeatureScript, false, 100, 0, "upstream timeout", nil)
	}
	RecordUsage(db, user.ID, FeatureScript, true, 100, 500, "", nil)

	res := Evaluate(db, user.ID, FeatureScript)

	assert.True(t, res.Allowed)
	assert.Equal(t, 1, res.CurrentUsage)
}

func TestEvaluateCountsArePerFeature(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, SeedPolicies(db, false))
	user := newFreeUser(t, db)

	for i := 0; i < 5; i++ {
		RecordUsage(db, user.ID, FeatureScript, true, 100, 500, "", nil)
	}

	// Scripts exhausted, hooks untouched.
	assert.False(t, Evaluate(db, user.ID, FeatureScript).Allowed)

	hooks := Evaluate(db, user.ID, FeatureHooks)
	assert.True(t, hooks.Allowed)
	assert.Equal(t, 0, hooks.CurrentUsage)
}

func TestEvaluateCountsArePerUser(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, SeedPolicies(db, false))
	alice := newFreeUser(t, db)
	bob := models.User{Email: "bob@example.com", Tier: "free", Role: "user", SubscriptionStatus: "active"}
	require.NoError(t, db.Create(&bob).Error)

	for i := 0; i < 5; i++ {
		RecordUsage(db, alice.ID, FeatureScript, true, 100, 500, "", nil)
	}

	assert.False(t, Evaluate(db, alice.ID, FeatureScript).Allowed)
	assert.True(t, Evaluate(db, bob.ID, FeatureScript).Allowed)
}

func TestEvaluateHigherTierHigherLimit(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, SeedPolicies(db, false))
	user := models.User{Email: "pro@example.com", Tier: "pro", Role: "user", SubscriptionStatus: "active"}
	require.NoError(t, db.Create(&user).Error)

	for i := 0; i < 5; i++ {
		RecordUsage(db, user.ID, FeatureScript, true, 100, 500, "", nil)
	}

	res := Evaluate(db, user.ID, FeatureScript)
	assert.True(t, res.Allowed)
	assert.Equal(t, 200, res.Limit)

	// Thumbnail is pro-only among the seeded tiers.
	assert.True(t, Evaluate(db, user.ID, FeatureThumbnail).Allowed)
}

func TestMonthlyUsageReport(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, SeedPolicies(db, false))
	user := newFreeUser(t, db)

	RecordUsage(db, user.ID, FeatureScript, true, 100, 500, "", nil)
	RecordUsage(db, user.ID, FeatureScript, true, 100, 500, "", nil)
	RecordUsage(db, user.ID, FeatureHooks, true, 100, 50, "", nil)
	RecordUsage(db, user.ID, FeatureHooks, false, 100, 0, "boom", nil)

	usage, err := MonthlyUsage(db, user.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, usage[FeatureScript].CurrentUsage)
	assert.Equal(t, 5, usage[FeatureScript].Limit)
	assert.Equal(t, 1, usage[FeatureHooks].CurrentUsage)
	assert.Equal(t, DenialFeatureDisabled, usage[FeatureOutline].Kind)
}

func TestEvaluateFailsClosedOnStorageError(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, SeedPolicies(db, false))
	user := newFreeUser(t, db)

	// Break the store out from under the evaluator: the count query now
	// errors, and the answer must be a deny, never a fail-open allow.
	require.NoError(t, db.Migrator().DropTable(&models.UsageLog{}))

	res := Evaluate(db, user.ID, FeatureScript)

	assert.False(t, res.Allowed)
	assert.Equal(t, DenialInternal, res.Kind)
	// Generic reason only, driver detail stays in the operational log.
	assert.NotContains(t, res.Reason, "usage_logs")
	assert.NotContains(t, res.Reason, "SQL")
}

func TestValidFeature(t *testing.T) {
	assert.True(t, ValidFeature(FeatureScript))
	assert.True(t, ValidFeature(FeatureCTAs))
	assert.False(t, ValidFeature(Feature("podcast")))
}
