// Package authz is the pure authorization gate evaluated before every
// lifecycle operation. It decides from the principal's kind and approval
// flag alone; ownership and state checks live with the data in the services
// but speak the same error taxonomy.
package authz

import (
	"foodback/internal/apperr"
	"foodback/internal/model"
)

// Principal is the authenticated actor as seen by the gate: a tagged kind
// plus its approval flag. Admins are implicitly approved.
type Principal struct {
	Kind     string
	Approved bool
}

type Operation int

const (
	OpCreateDonation Operation = iota
	OpUpdateDonation
	OpDeleteDonation
	OpListOwnDonations
	OpListAvailableDonations
	OpCreateRequest
	OpListOwnRequests
	OpApproveRegistration
	OpViewStatistics
)

type rule struct {
	kinds           []string
	requireApproved bool
}

var rules = map[Operation]rule{
	OpCreateDonation:         {kinds: []string{model.KindCompany}, requireApproved: true},
	OpUpdateDonation:         {kinds: []string{model.KindCompany}},
	OpDeleteDonation:         {kinds: []string{model.KindCompany}},
	OpListOwnDonations:       {kinds: []string{model.KindCompany}},
	OpListAvailableDonations: {kinds: []string{model.KindNGO, model.KindAdmin}, requireApproved: true},
	OpCreateRequest:          {kinds: []string{model.KindNGO}, requireApproved: true},
	OpListOwnRequests:        {kinds: []string{model.KindNGO}},
	OpApproveRegistration:    {kinds: []string{model.KindAdmin}},
	OpViewStatistics:         {kinds: []string{model.KindAdmin}},
}

// Require returns nil when the principal may perform op, otherwise an
// apperr.Authorization denial.
func Require(p Principal, op Operation) error {
	r, ok := rules[op]
	if !ok {
		return apperr.Authorization("operação desconhecida")
	}

	allowed := false
	for _, k := range r.kinds {
		if p.Kind == k {
			allowed = true
			break
		}
	}
	if !allowed {
		return apperr.Authorization("acesso negado para este tipo de usuário")
	}

	if r.requireApproved && p.Kind != model.KindAdmin && !p.Approved {
		return apperr.Authorization("sua conta precisa ser aprovada pelo administrador")
	}
	return nil
}
