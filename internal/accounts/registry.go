package accounts

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gncexport/gncexport/internal/model"
)

// ErrUnknownRole is returned when a role has no configured binding.
var ErrUnknownRole = errors.New("role not configured")

// UnknownAccountError reports a configured account name with no match in
// the ledger.
type UnknownAccountError struct {
	Role Role
	Name string
}

func (e *UnknownAccountError) Error() string {
	return fmt.Sprintf("unmapped account %q for role %s", e.Name, e.Role)
}

// Lookup finds ledger accounts by full name.
type Lookup interface {
	AccountByName(fullName string) (*model.Account, bool)
}

// Registry maps roles to concrete ledger accounts.
type Registry struct {
	accounts map[Role][]*model.Account
	members  map[Role]map[model.AccountID]bool
	multi    map[Role]bool
}

// NewRegistry resolves every binding against the ledger. It fails on the
// first name that does not exist.
func NewRegistry(ledger Lookup, bindings map[Role]Binding) (*Registry, error) {
	r := &Registry{
		accounts: make(map[Role][]*model.Account, len(bindings)),
		members:  make(map[Role]map[model.AccountID]bool, len(bindings)),
		multi:    make(map[Role]bool, len(bindings)),
	}

	// Resolve in a fixed order so the reported error is deterministic.
	roles := make([]Role, 0, len(bindings))
	for role := range bindings {
		roles = append(roles, role)
	}
	slices.Sort(roles)

	for _, role := range roles {
		b := bindings[role]
		set := make(map[model.AccountID]bool, len(b.Names))
		var accts []*model.Account
		for _, name := range b.Names {
			a, ok := ledger.AccountByName(name)
			if !ok {
				return nil, &UnknownAccountError{Role: role, Name: name}
			}
			if set[a.ID] {
				continue
			}
			set[a.ID] = true
			accts = append(accts, a)
		}
		r.accounts[role] = accts
		r.members[role] = set
		r.multi[role] = b.Multi
	}
	return r, nil
}

// Resolve returns the accounts bound to role.
func (r *Registry) Resolve(role Role) ([]*model.Account, error) {
	accts, ok := r.accounts[role]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRole, role)
	}
	return accts, nil
}

// Account returns the single account bound to role. A role configured in
// list form is rejected even when the list has one entry.
func (r *Registry) Account(role Role) (*model.Account, error) {
	accts, err := r.Resolve(role)
	if err != nil {
		return nil, err
	}
	if r.multi[role] {
		return nil, fmt.Errorf("role %s: expected a single account name, got a list", role)
	}
	if len(accts) != 1 {
		return nil, fmt.Errorf("role %s: expected one account, got %d", role, len(accts))
	}
	return accts[0], nil
}

// Accounts returns the accounts bound to role, or nil when unconfigured.
func (r *Registry) Accounts(role Role) []*model.Account {
	return r.accounts[role]
}

// Contains reports whether acct is bound to role.
func (r *Registry) Contains(role Role, acct *model.Account) bool {
	if acct == nil {
		return false
	}
	return r.members[role][acct.ID]
}

// Children returns the child accounts of every account bound to role, in
// ledger order.
func (r *Registry) Children(role Role) []*model.Account {
	var out []*model.Account
	for _, a := range r.accounts[role] {
		out = append(out, a.Children...)
	}
	return out
}
