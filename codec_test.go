package idlcodec

import (
	"encoding/json"
	"testing"
)

func TestMemcmpFilterJSON(t *testing.T) {
	tests := []struct {
		name   string
		filter MemcmpFilter
		want   string
	}{
		{"leading bytes", LeadingBytes("3Bxs4"), `{"offset":0,"bytes":"3Bxs4"}`},
		{"data size", MemcmpFilter{DataSize: 165}, `{"dataSize":165}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := json.Marshal(tc.filter)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}
			if string(got) != tc.want {
				t.Errorf("Marshal = %s, want %s", got, tc.want)
			}
		})
	}
}
