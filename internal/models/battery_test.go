package models

import (
	"encoding/json"
	"math"
	"testing"
)

func TestBatterySpecEnergyJoules(t *testing.T) {
	spec := BatterySpec{CapacityMAh: 1000, Voltage: 3.7}

	got := spec.EnergyJoules()
	want := 1000 * 3.7 * 3.6
	if got != want {
		t.Errorf("EnergyJoules() = %v, want %v", got, want)
	}
}

func TestBatteryLifeJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		life BatteryLife
	}{
		{"finite", BatteryLife{Hours: 73.99, Days: 3.0829}},
		{"zero", BatteryLife{}},
		{"infinite", BatteryLife{Hours: math.Inf(1), Days: math.Inf(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.life)
			if err != nil {
				t.Fatalf("Marshal() failed: %v", err)
			}

			var got BatteryLife
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("Unmarshal() failed: %v", err)
			}

			if got != tt.life {
				t.Errorf("round trip = %+v, want %+v", got, tt.life)
			}
		})
	}
}

func TestBatteryLifeMarshalInfinite(t *testing.T) {
	data, err := json.Marshal(BatteryLife{Hours: math.Inf(1), Days: math.Inf(1)})
	if err != nil {
		t.Fatalf("Marshal() failed for infinite projection: %v", err)
	}

	want := `{"hours":"inf","days":"inf"}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestBatteryLifeUnmarshalRejectsGarbage(t *testing.T) {
	var life BatteryLife
	if err := json.Unmarshal([]byte(`{"hours":"soon","days":1}`), &life); err == nil {
		t.Error("Unmarshal() should reject non-numeric, non-sentinel hours")
	}
}

func TestBatteryLifeIsUnlimited(t *testing.T) {
	if (BatteryLife{Hours: 5}).IsUnlimited() {
		t.Error("finite projection reported as unlimited")
	}
	if !(BatteryLife{Hours: math.Inf(1), Days: math.Inf(1)}).IsUnlimited() {
		t.Error("infinite projection not reported as unlimited")
	}
}
