package db

import (
	"testing"

	"github.com/cfstools/schedtab/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return gdb
}

func TestAutoMigrateAndSeed(t *testing.T) {
	gdb := openTestDB(t)

	if err := AutoMigrate(gdb); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	if err := SeedDefaults(gdb); err != nil {
		t.Fatalf("SeedDefaults: %v", err)
	}

	var row models.SchedParam
	if err := gdb.First(&row, models.SchedParamRowID).Error; err != nil {
		t.Fatalf("read seeded row: %v", err)
	}
	if row.Value != "1,10,10,128" {
		t.Errorf("seeded value = %q, want 1,10,10,128", row.Value)
	}
}

func TestSeedDefaults_DoesNotOverwrite(t *testing.T) {
	gdb := openTestDB(t)
	if err := AutoMigrate(gdb); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	custom := models.SchedParam{ID: models.SchedParamRowID, Value: "2,20,40,64"}
	if err := gdb.Create(&custom).Error; err != nil {
		t.Fatalf("create custom row: %v", err)
	}

	if err := SeedDefaults(gdb); err != nil {
		t.Fatalf("SeedDefaults: %v", err)
	}

	var row models.SchedParam
	if err := gdb.First(&row, models.SchedParamRowID).Error; err != nil {
		t.Fatalf("read row: %v", err)
	}
	if row.Value != "2,20,40,64" {
		t.Errorf("value = %q, seed overwrote a committed row", row.Value)
	}
}

func TestMySQLDSN(t *testing.T) {
	got := MySQLDSN("10.0.0.5", 3307, "orion")
	want := "root@tcp(10.0.0.5:3307)/orion?parseTime=true"
	if got != want {
		t.Errorf("MySQLDSN = %q, want %q", got, want)
	}
}
