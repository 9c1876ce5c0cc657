package dispatch

import (
	"testing"

	"github.com/example/runcard/internal/models"
)

func TestEffectiveCapabilities_Overrides(t *testing.T) {
	rd := models.NewReferenceData()
	rd.UnitCaps["E905"] = []string{"E", "BLS"}

	st := NewDispatchState()
	st.CapsAdded["E905"] = []string{"hm"}
	st.CapsRemoved["E905"] = []string{"bls"}

	caps := EffectiveCapabilities(rd, st, "E905")
	if !caps["E"] {
		t.Error("base capability E should survive")
	}
	if !caps["HM"] {
		t.Error("added capability should be present, normalized")
	}
	if caps["BLS"] {
		t.Error("removed capability should be gone")
	}
}

func TestEffectiveCapabilities_RemoveWinsOverAdd(t *testing.T) {
	rd := models.NewReferenceData()
	st := NewDispatchState()
	st.CapsAdded["A905"] = []string{"ALS"}
	st.CapsRemoved["A905"] = []string{"ALS"}

	if EffectiveCapabilities(rd, st, "A905")["ALS"] {
		t.Error("a token both added and removed should resolve to removed")
	}
}

func TestEffectiveStatus_Layering(t *testing.T) {
	rd := models.NewReferenceData()
	rd.UnitStatus["E905"] = models.StatusAvailable

	st := NewDispatchState()
	if got := EffectiveStatus(rd, st, "E905"); got != models.StatusAvailable {
		t.Errorf("base status = %q, want %q", got, models.StatusAvailable)
	}

	st.StatusOverride["E905"] = models.StatusDispatched
	if got := EffectiveStatus(rd, st, "E905"); got != models.StatusDispatched {
		t.Errorf("override status = %q, want %q", got, models.StatusDispatched)
	}

	// Units with no base record default to out of service.
	if got := EffectiveStatus(rd, st, "GHOST1"); got != models.StatusOutOfService {
		t.Errorf("unknown unit status = %q, want %q", got, models.StatusOutOfService)
	}
}

func TestStationAllowed_MutualAidGate(t *testing.T) {
	st := NewDispatchState()
	if !StationAllowed(st, "905") {
		t.Error("home-agency station should always be allowed")
	}
	if StationAllowed(st, "850") {
		t.Error("foreign station should be excluded with mutual aid off")
	}
	st.MutualAid = true
	if !StationAllowed(st, "850") {
		t.Error("foreign station should be allowed with mutual aid on")
	}
}

func TestResolveCrossStaffing_CoercesPartners(t *testing.T) {
	rd := models.NewReferenceData()
	rd.CrossStaff = [][]string{{"E916", "SQ916"}}
	rd.UnitStatus["E916"] = models.StatusAvailable
	rd.UnitStatus["SQ916"] = models.StatusAvailable

	st := NewDispatchState()
	st.StatusOverride["E916"] = models.StatusDispatched

	ResolveCrossStaffing(rd, st)
	if got := st.StatusOverride["SQ916"]; got != models.StatusCrossStaffed {
		t.Errorf("partner status = %q, want %q", got, models.StatusCrossStaffed)
	}
}

func TestResolveCrossStaffing_LiftsStaleCoercion(t *testing.T) {
	rd := models.NewReferenceData()
	rd.CrossStaff = [][]string{{"E916", "SQ916"}}
	rd.UnitStatus["E916"] = models.StatusAvailable
	rd.UnitStatus["SQ916"] = models.StatusAvailable

	st := NewDispatchState()
	st.StatusOverride["SQ916"] = models.StatusCrossStaffed

	// Nobody in the group is dispatched anymore, so the coercion lifts.
	ResolveCrossStaffing(rd, st)
	if _, ok := st.StatusOverride["SQ916"]; ok {
		t.Error("stale cross-staff coercion should be removed")
	}
}

func TestResolveCrossStaffing_DoesNotTouchOutOfService(t *testing.T) {
	rd := models.NewReferenceData()
	rd.CrossStaff = [][]string{{"E916", "SQ916"}}
	rd.UnitStatus["E916"] = models.StatusDispatched
	rd.UnitStatus["SQ916"] = models.StatusOutOfService

	st := NewDispatchState()
	ResolveCrossStaffing(rd, st)
	if _, ok := st.StatusOverride["SQ916"]; ok {
		t.Error("out-of-service partner should keep its status")
	}
}

func TestDispatchState_CloneIsDeep(t *testing.T) {
	st := NewDispatchState()
	st.StatusOverride["E905"] = models.StatusDispatched
	st.CapsAdded["E905"] = []string{"HM"}

	clone := st.Clone()
	clone.StatusOverride["E905"] = models.StatusAvailable
	clone.CapsAdded["E905"][0] = "BLS"

	if st.StatusOverride["E905"] != models.StatusDispatched {
		t.Error("clone mutation leaked into status overrides")
	}
	if st.CapsAdded["E905"][0] != "HM" {
		t.Error("clone mutation leaked into capability overrides")
	}
}
