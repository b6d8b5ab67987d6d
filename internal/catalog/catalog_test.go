package catalog

import (
	"errors"
	"reflect"
	"testing"
)

func TestNew_RejectsDuplicateWakeUpID(t *testing.T) {
	_, err := New([]Application{
		{Name: "cfe_es", WakeUpID: 4, Priority: 1, Group: "CORE"},
		{Name: "hk", WakeUpID: 4, Priority: 2, Group: "HK"},
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var derr *DuplicateWakeUpIDError
	if !errors.As(err, &derr) {
		t.Fatalf("error %v is not a *DuplicateWakeUpIDError", err)
	}
	if derr.WakeUpID != 4 || derr.First != "cfe_es" || derr.Second != "hk" {
		t.Errorf("error fields = %+v, want id 4, cfe_es, hk", derr)
	}
}

func TestSymbol(t *testing.T) {
	app := Application{Name: "ci_lab", WakeUpID: 7}
	if got := app.Symbol(); got != "CI_LAB_WAKEUP_MID" {
		t.Errorf("Symbol() = %q, want CI_LAB_WAKEUP_MID", got)
	}
}

func TestGroups_FirstSeenOrder(t *testing.T) {
	c, err := New([]Application{
		{Name: "a", WakeUpID: 1, Group: "SCH_GROUP_CDH"},
		{Name: "b", WakeUpID: 2, Group: "SCH_GROUP_GNC"},
		{Name: "c", WakeUpID: 3, Group: "SCH_GROUP_CDH"},
		{Name: "d", WakeUpID: 4, Group: "SCH_GROUP_PAYLOAD"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"SCH_GROUP_CDH", "SCH_GROUP_GNC", "SCH_GROUP_PAYLOAD"}
	if got := c.Groups(); !reflect.DeepEqual(got, want) {
		t.Errorf("Groups() = %v, want %v", got, want)
	}
}

func TestGroups_EmptyCatalog(t *testing.T) {
	c, err := New(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.Groups(); len(got) != 0 {
		t.Errorf("Groups() = %v, want empty", got)
	}
}

func TestLookups(t *testing.T) {
	c, err := New([]Application{
		{Name: "sc", WakeUpID: 9, Priority: 3, Group: "SC"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if app, ok := c.ByWakeUpID(9); !ok || app.Name != "sc" {
		t.Errorf("ByWakeUpID(9) = %+v, %v", app, ok)
	}
	if _, ok := c.ByWakeUpID(10); ok {
		t.Error("ByWakeUpID(10) should not be found")
	}
	if app, ok := c.ByName("sc"); !ok || app.WakeUpID != 9 {
		t.Errorf("ByName(sc) = %+v, %v", app, ok)
	}
	if _, ok := c.ByName("nope"); ok {
		t.Error("ByName(nope) should not be found")
	}
}
