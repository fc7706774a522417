package model

import (
	"reflect"
	"testing"
)

func TestParseTier(t *testing.T) {
	tests := []struct {
		in      string
		want    Tier
		wantErr bool
	}{
		{"A", TierA, false},
		{"B", TierB, false},
		{"C", TierC, false},
		{"b", TierNone, true},
		{" C ", TierNone, true},
		{"", TierNone, true},
		{"null", TierNone, true},
		{"D", TierNone, true},
		{"AA", TierNone, true},
	}
	for _, tt := range tests {
		got, err := ParseTier(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseTier(%q) = %q, %v; 期望 %q, wantErr=%v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestConnectionStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from, to ConnectionStatus
		want     bool
	}{
		{ConnectionPending, ConnectionAccepted, true},
		{ConnectionPending, ConnectionDeclined, true},
		{ConnectionPending, ConnectionPending, false},
		{ConnectionAccepted, ConnectionDeclined, false},
		{ConnectionDeclined, ConnectionAccepted, false},
		{ConnectionAccepted, ConnectionPending, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransition(tt.to); got != tt.want {
			t.Errorf("%s → %s: 期望 %v, 实际 %v", tt.from, tt.to, tt.want, got)
		}
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" Go ", "python", "", "go", "Python", "SQL"})
	want := []string{"Go", "python", "SQL"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("期望 %v, 实际 %v", want, got)
	}
	if got := NormalizeTags(nil); got == nil || len(got) != 0 {
		t.Errorf("nil 输入应返回空列表, 实际 %#v", got)
	}
}

func TestCompany_Normalize(t *testing.T) {
	c := &Company{Name: "  Acme  ", Positions: []string{" Engineer ", " "}}
	c.Normalize()

	if c.Name != "Acme" {
		t.Errorf("期望 Name=Acme, 实际=%q", c.Name)
	}
	if !reflect.DeepEqual(c.Positions, []string{"Engineer"}) {
		t.Errorf("期望 Positions=[Engineer], 实际=%v", c.Positions)
	}
	if c.Benefits == nil || c.TechStack == nil || c.RecentNews == nil {
		t.Error("nil 列表应被置为空列表")
	}
}
