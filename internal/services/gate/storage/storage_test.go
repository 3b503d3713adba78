package storage

import "testing"

func boolPtr(v bool) *bool        { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestQualifies(t *testing.T) {
	tests := []struct {
		name string
		rec  TraderRecord
		want bool
	}{
		{"empty record", TraderRecord{TraderID: "1"}, false},
		{"ftd true", TraderRecord{TraderID: "1", FTD: boolPtr(true)}, true},
		{"ftd true sumdep nil", TraderRecord{TraderID: "1", FTD: boolPtr(true), Sumdep: nil}, true},
		{"ftd false sumdep zero", TraderRecord{TraderID: "1", FTD: boolPtr(false), Sumdep: floatPtr(0)}, false},
		{"ftd false sumdep positive", TraderRecord{TraderID: "1", FTD: boolPtr(false), Sumdep: floatPtr(25)}, true},
		{"ftd nil sumdep positive", TraderRecord{TraderID: "1", Sumdep: floatPtr(0.01)}, true},
		{"ftd nil sumdep negative", TraderRecord{TraderID: "1", Sumdep: floatPtr(-5)}, false},
		{"registered only", TraderRecord{TraderID: "1", Registered: boolPtr(true)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Qualifies(tt.rec); got != tt.want {
				t.Fatalf("Qualifies(%+v) = %v, want %v", tt.rec, got, tt.want)
			}
		})
	}
}
