package validator

import (
	"strings"
	"testing"

	"github.com/cfstools/schedtab/internal/catalog"
	"github.com/cfstools/schedtab/internal/params"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]catalog.Application{
		{Name: "es", WakeUpID: 0, Priority: 5, Group: "CORE"},
		{Name: "hk", WakeUpID: 1, Priority: 3, Group: "CORE"},
		{Name: "sc", WakeUpID: 2, Priority: 1, Group: "OPS"},
	})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return cat
}

func TestValidate_PassThrough(t *testing.T) {
	p := params.Params{MaxMsgsPerSlot: 2, MaxMsgsPerSecond: 5, MaxMsgsPerCycle: 10, SlotCount: 8}

	res := Validate(testCatalog(t), []Definition{
		{Name: "1hz", AppNames: []string{"es", "hk"}},
		{Name: "2hz", AppNames: []string{"sc"}},
	}, p)

	if len(res.Valid) != 2 || len(res.Rejects) != 0 || len(res.Warnings) != 0 {
		t.Fatalf("result = %+v, want 2 valid and nothing dropped", res)
	}
	if res.Valid[0].Name != "1hz" || len(res.Valid[0].Apps) != 2 {
		t.Errorf("valid[0] = %+v", res.Valid[0])
	}
}

func TestValidate_UnknownAppDropped(t *testing.T) {
	p := params.Defaults()

	res := Validate(testCatalog(t), []Definition{
		{Name: "1hz", AppNames: []string{"es", "retired_app"}},
	}, p)

	if len(res.Valid) != 1 {
		t.Fatalf("valid = %+v, want the message kept", res.Valid)
	}
	if len(res.Valid[0].Apps) != 1 || res.Valid[0].Apps[0].Name != "es" {
		t.Errorf("apps = %+v, want just es", res.Valid[0].Apps)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "retired_app") {
		t.Errorf("warnings = %v, want one naming retired_app", res.Warnings)
	}
}

func TestValidate_SlotOverflowRejected(t *testing.T) {
	p := params.Params{MaxMsgsPerSlot: 1, MaxMsgsPerSecond: 10, MaxMsgsPerCycle: 10, SlotCount: 2}

	res := Validate(testCatalog(t), []Definition{
		{Name: "fat", AppNames: []string{"es", "hk", "sc"}},
	}, p)

	if len(res.Valid) != 0 {
		t.Fatalf("valid = %+v, want none", res.Valid)
	}
	if len(res.Rejects) != 1 || res.Rejects[0].Message != "fat" {
		t.Fatalf("rejects = %+v", res.Rejects)
	}
	if !strings.Contains(res.Rejects[0].Reason, "2-slot") {
		t.Errorf("reason = %q", res.Rejects[0].Reason)
	}
}

func TestValidate_PerSlotCap(t *testing.T) {
	p := params.Params{MaxMsgsPerSlot: 1, MaxMsgsPerSecond: 10, MaxMsgsPerCycle: 10, SlotCount: 8}

	res := Validate(testCatalog(t), []Definition{
		{Name: "1hz", AppNames: []string{"es", "hk", "sc"}},
		{Name: "2hz", AppNames: []string{"hk"}},
	}, p)

	if len(res.Valid) != 1 || res.Valid[0].Name != "2hz" {
		t.Fatalf("valid = %+v, want just 2hz", res.Valid)
	}
	if len(res.Rejects) != 1 || res.Rejects[0].Message != "1hz" {
		t.Fatalf("rejects = %+v, want 1hz", res.Rejects)
	}
	if !strings.Contains(res.Rejects[0].Reason, "per-slot cap of 1") {
		t.Errorf("reason = %q", res.Rejects[0].Reason)
	}
}

func TestValidate_PerSecondCap(t *testing.T) {
	p := params.Params{MaxMsgsPerSlot: 5, MaxMsgsPerSecond: 2, MaxMsgsPerCycle: 10, SlotCount: 8}

	res := Validate(testCatalog(t), []Definition{
		{Name: "busy", AppNames: []string{"es", "hk", "sc"}},
	}, p)

	if len(res.Rejects) != 1 || !strings.Contains(res.Rejects[0].Reason, "per-second") {
		t.Fatalf("rejects = %+v, want a per-second rejection", res.Rejects)
	}
}

func TestValidate_PerCycleCapKeepsFirst(t *testing.T) {
	p := params.Params{MaxMsgsPerSlot: 1, MaxMsgsPerSecond: 10, MaxMsgsPerCycle: 2, SlotCount: 8}

	res := Validate(testCatalog(t), []Definition{
		{Name: "m0", AppNames: []string{"es"}},
		{Name: "m1", AppNames: []string{"hk"}},
		{Name: "m2", AppNames: []string{"sc"}},
	}, p)

	if len(res.Valid) != 2 {
		t.Fatalf("valid = %+v, want first two kept", res.Valid)
	}
	if res.Valid[0].Name != "m0" || res.Valid[1].Name != "m1" {
		t.Errorf("kept %q, %q; want m0, m1", res.Valid[0].Name, res.Valid[1].Name)
	}
	if len(res.Rejects) != 1 || res.Rejects[0].Message != "m2" {
		t.Errorf("rejects = %+v, want m2", res.Rejects)
	}
}
