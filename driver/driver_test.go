package driver

import (
	"path/filepath"
	"testing"

	"beach-review/config"
	"beach-review/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	cfg := &config.Config{}
	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = filepath.Join(t.TempDir(), "beach.db") + "?_foreign_keys=on&_busy_timeout=5000&_txlock=immediate"
	cfg.Database.MaxOpen = 1
	return cfg
}

func TestConnectAndMigrate(t *testing.T) {
	db, err := ConnectDB(testConfig(t))
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, Migrate(db))
	// second run must be a no-op
	require.NoError(t, Migrate(db))

	for _, table := range []any{&models.County{}, &models.Beach{}, &models.User{}, &models.Review{}, &models.Like{}} {
		assert.True(t, db.Migrator().HasTable(table))
	}
	assert.True(t, db.Migrator().HasIndex(&models.Like{}, "idx_like_review_liker"))
}

func TestLikePairIsUnique(t *testing.T) {
	db, err := ConnectDB(testConfig(t))
	require.NoError(t, err)
	defer Close(db)
	require.NoError(t, Migrate(db))

	user := models.User{Email: "a@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	review := models.Review{ReviewTitle: "Nice", BeachID: 1, User: user.Email}
	require.NoError(t, db.Create(&review).Error)

	require.NoError(t, db.Create(&models.Like{ReviewID: review.ID, LikerID: user.ID}).Error)
	assert.Error(t, db.Create(&models.Like{ReviewID: review.ID, LikerID: user.ID}).Error)
}

func TestUnsupportedDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Driver = "oracle"

	_, err := ConnectDB(cfg)
	assert.ErrorContains(t, err, "unsupported database driver")
}
