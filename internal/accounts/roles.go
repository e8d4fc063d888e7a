package accounts

// Role is a semantic tag bound to one or more ledger accounts.
type Role string

const (
	RoleTransaction Role = "transaction"  // settlement bank account(s)
	RoleMoneyMarket Role = "money-market" // overnight / savings account(s)
	RoleInterest    Role = "interest"
	RoleCommission  Role = "commission"
	RoleTax         Role = "tax"
	RoleInvestment  Role = "investment" // parent of one account per security
	RoleDividend    Role = "dividend"
)

// Roles lists every role the exporter needs, in configuration order.
var Roles = []Role{
	RoleTransaction,
	RoleMoneyMarket,
	RoleInterest,
	RoleCommission,
	RoleTax,
	RoleInvestment,
	RoleDividend,
}

// SingleAccountRoles must be bound to exactly one account.
var SingleAccountRoles = []Role{RoleInvestment, RoleDividend}

// Binding is the configured account names for one role. Multi records
// whether the configuration used list form.
type Binding struct {
	Names []string
	Multi bool
}
