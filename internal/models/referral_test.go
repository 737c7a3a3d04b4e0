package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReferralKind(t *testing.T) {
	tests := []struct {
		in      string
		want    ReferralKind
		wantErr bool
	}{
		{in: "talent", want: ReferralKindTalent},
		{in: " Talento ", want: ReferralKindTalent},
		{in: "company", want: ReferralKindCompany},
		{in: "EMPRESA", want: ReferralKindCompany},
		{in: "partner", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseReferralKind(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReferralKind_Labels(t *testing.T) {
	assert.Equal(t, "talent", ReferralKindTalent.String())
	assert.Equal(t, "talento", ReferralKindTalent.Label())
	assert.Equal(t, "company", ReferralKindCompany.String())
	assert.Equal(t, "empresa", ReferralKindCompany.Label())
}

func TestReferralKind_JSON(t *testing.T) {
	body, err := json.Marshal(struct {
		Kind ReferralKind `json:"kind"`
	}{Kind: ReferralKindCompany})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"company"}`, string(body))

	var decoded struct {
		Kind ReferralKind `json:"kind"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"talento"}`), &decoded))
	assert.Equal(t, ReferralKindTalent, decoded.Kind)

	assert.Error(t, json.Unmarshal([]byte(`{"kind":"x"}`), &decoded))
}

func TestReferral_Accessors(t *testing.T) {
	talent := &Referral{Kind: ReferralKindTalent, Talent: &TalentReferral{Name: "Ana Silva", Email: "ana@example.com"}}
	assert.Equal(t, "Ana Silva", talent.DisplayName())
	assert.Equal(t, "ana@example.com", talent.Email())

	company := &Referral{Kind: ReferralKindCompany, Company: &CompanyReferral{CompanyName: "Acme", Email: "rh@acme.com"}}
	assert.Equal(t, "Acme", company.DisplayName())
	assert.Equal(t, "rh@acme.com", company.Email())

	assert.Empty(t, (&Referral{}).DisplayName())
}
