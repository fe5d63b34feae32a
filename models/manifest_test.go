package models

import "testing"

func TestIsCanonicalPropNo(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"314010103", true},
		{"508000001", true},
		{"", false},
		{"103-7", false},         // 临时编号
		{"314010103-7", false},   // 组合形态，仍算待核
		{"31401010", false},      // 8 位
		{"3140101030", false},    // 10 位
		{"31401010a", false},
	}
	for _, c := range cases {
		if got := IsCanonicalPropNo(c.in); got != c.want {
			t.Errorf("IsCanonicalPropNo(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestManifestRecordTag(t *testing.T) {
	rec := ManifestRecord{PropertyNo: "314010103", SubNo: "7"}
	if got := rec.Tag(); got != "314010103-7" {
		t.Errorf("Tag() = %q", got)
	}
}
