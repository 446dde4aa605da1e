package authz

import (
	"testing"

	"foodback/internal/apperr"
	"foodback/internal/model"
)

func TestGateRules(t *testing.T) {
	tests := []struct {
		name      string
		principal Principal
		op        Operation
		allowed   bool
	}{
		{"approved company creates donation", Principal{Kind: model.KindCompany, Approved: true}, OpCreateDonation, true},
		{"unapproved company cannot create donation", Principal{Kind: model.KindCompany}, OpCreateDonation, false},
		{"ngo cannot create donation", Principal{Kind: model.KindNGO, Approved: true}, OpCreateDonation, false},
		{"company updates own donations regardless of approval", Principal{Kind: model.KindCompany}, OpUpdateDonation, true},
		{"company deletes own donations regardless of approval", Principal{Kind: model.KindCompany}, OpDeleteDonation, true},
		{"company lists own donations", Principal{Kind: model.KindCompany}, OpListOwnDonations, true},
		{"approved ngo lists available", Principal{Kind: model.KindNGO, Approved: true}, OpListAvailableDonations, true},
		{"unapproved ngo cannot list available", Principal{Kind: model.KindNGO}, OpListAvailableDonations, false},
		{"admin lists available without approval flag", Principal{Kind: model.KindAdmin}, OpListAvailableDonations, true},
		{"company cannot list available", Principal{Kind: model.KindCompany, Approved: true}, OpListAvailableDonations, false},
		{"approved ngo creates request", Principal{Kind: model.KindNGO, Approved: true}, OpCreateRequest, true},
		{"unapproved ngo cannot create request", Principal{Kind: model.KindNGO}, OpCreateRequest, false},
		{"admin approves registrations", Principal{Kind: model.KindAdmin}, OpApproveRegistration, true},
		{"ngo cannot approve registrations", Principal{Kind: model.KindNGO, Approved: true}, OpApproveRegistration, false},
		{"admin views statistics", Principal{Kind: model.KindAdmin}, OpViewStatistics, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Require(tc.principal, tc.op)
			if tc.allowed && err != nil {
				t.Fatalf("expected allow, got %v", err)
			}
			if !tc.allowed {
				if err == nil {
					t.Fatal("expected denial")
				}
				if apperr.KindOf(err) != apperr.KindAuthorization {
					t.Fatalf("denial must be an authorization error, got %v", err)
				}
			}
		})
	}
}

func TestGateUnknownOperationDenied(t *testing.T) {
	if err := Require(Principal{Kind: model.KindAdmin}, Operation(999)); err == nil {
		t.Fatal("unknown operations must be denied")
	}
}
