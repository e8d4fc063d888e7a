package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"gopkg.in/yaml.v3"

	"github.com/gncexport/gncexport/internal/accounts"
)

// DateFormat is the layout of due_date.
const DateFormat = "2006-01-02"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the top-level gncexport.yaml configuration.
type Config struct {
	Ledger   string                `yaml:"ledger"`
	DueDate  string                `yaml:"due_date"` // "YYYY-MM-DD"
	Currency string                `yaml:"currency"`
	Language string                `yaml:"language"` // "en" or "de"
	Output   OutputConfig          `yaml:"output"`
	Matcher  MatcherConfig         `yaml:"matcher"`
	Git      GitConfig             `yaml:"git"`
	Accounts map[string]AccountRef `yaml:"accounts"`
}

// OutputConfig names the report files.
type OutputConfig struct {
	Dir         string `yaml:"dir"`
	Bank        string `yaml:"bank"`
	MoneyMarket string `yaml:"money_market"`
	Investment  string `yaml:"investment"`
	Securities  string `yaml:"securities"`
	Commit      bool   `yaml:"commit"`
}

// MatcherConfig tunes dividend name matching.
type MatcherConfig struct {
	Cutoff float64 `yaml:"cutoff"`
}

// GitConfig holds the identity used for export commits.
type GitConfig struct {
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// AccountRef is one account name or a list of names.
type AccountRef struct {
	Names []string
	Multi bool
}

// One returns a scalar reference.
func One(name string) AccountRef {
	return AccountRef{Names: []string{name}}
}

// Many returns a list reference.
func Many(names ...string) AccountRef {
	return AccountRef{Names: names, Multi: true}
}

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (r *AccountRef) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*r = One(value.Value)
		return nil
	case yaml.SequenceNode:
		var names []string
		if err := value.Decode(&names); err != nil {
			return err
		}
		*r = Many(names...)
		return nil
	default:
		return fmt.Errorf("line %d: account must be a name or a list of names", value.Line)
	}
}

// MarshalYAML writes the form the reference was read in.
func (r AccountRef) MarshalYAML() (any, error) {
	if !r.Multi && len(r.Names) == 1 {
		return r.Names[0], nil
	}
	return r.Names, nil
}

// Load reads a gncexport.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with placeholder account names for a new project.
func Default() *Config {
	taxes := Many(
		"Expenses:Taxes:Capital Gains Tax",
		"Expenses:Taxes:Solidarity Surcharge",
		"Expenses:Taxes:Withholding Tax",
	)
	cfg := &Config{
		Ledger:  "household.gnucash",
		DueDate: time.Now().Format("2006") + "-01-01",
		Accounts: map[string]AccountRef{
			string(accounts.RoleTransaction): Many("Assets:Current Assets:Checking Account"),
			string(accounts.RoleMoneyMarket): Many("Assets:Current Assets:Savings Account"),
			string(accounts.RoleInterest):    Many("Income:Interest"),
			string(accounts.RoleCommission):  Many("Expenses:Bank Service Charge"),
			string(accounts.RoleTax):         taxes,
			string(accounts.RoleInvestment):  One("Assets:Investments:Brokerage Account"),
			string(accounts.RoleDividend):    One("Income:Dividend Income"),
		},
	}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Currency == "" {
		c.Currency = "EUR"
	}
	c.Currency = strings.ToUpper(c.Currency)
	if c.Language == "" {
		c.Language = "en"
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "."
	}
	if c.Output.Bank == "" {
		c.Output.Bank = "bank.csv"
	}
	if c.Output.MoneyMarket == "" {
		c.Output.MoneyMarket = "money-market.csv"
	}
	if c.Output.Investment == "" {
		c.Output.Investment = "investment.csv"
	}
	if c.Output.Securities == "" {
		c.Output.Securities = "stock.csv"
	}
	if c.Matcher.Cutoff == 0 {
		c.Matcher.Cutoff = 0.6
	}
	if c.Git.AuthorName == "" {
		c.Git.AuthorName = "gncexport"
	}
	if c.Git.AuthorEmail == "" {
		c.Git.AuthorEmail = "gncexport@localhost"
	}
}

// Validate checks the configuration for completeness.
func (c *Config) Validate() error {
	var problems []string
	if c.Ledger == "" {
		problems = append(problems, "ledger is required")
	}
	if _, err := c.Cutoff(); err != nil {
		problems = append(problems, err.Error())
	}
	if money.GetCurrency(c.Currency) == nil {
		problems = append(problems, fmt.Sprintf("unknown currency %q", c.Currency))
	}
	if c.Language != "en" && c.Language != "de" {
		problems = append(problems, fmt.Sprintf("unsupported language %q", c.Language))
	}
	if c.Matcher.Cutoff <= 0 || c.Matcher.Cutoff > 1 {
		problems = append(problems, fmt.Sprintf("matcher cutoff %v outside (0,1]", c.Matcher.Cutoff))
	}
	for _, role := range accounts.Roles {
		ref, ok := c.Accounts[string(role)]
		if !ok || len(ref.Names) == 0 {
			problems = append(problems, fmt.Sprintf("accounts.%s is required", role))
		}
	}
	for _, role := range accounts.SingleAccountRoles {
		if ref, ok := c.Accounts[string(role)]; ok && (ref.Multi || len(ref.Names) > 1) {
			problems = append(problems, fmt.Sprintf("accounts.%s takes a single account", role))
		}
	}
	for name := range c.Accounts {
		if !knownRole(name) {
			problems = append(problems, fmt.Sprintf("unknown role %q", name))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// Cutoff parses due_date.
func (c *Config) Cutoff() (time.Time, error) {
	t, err := time.Parse(DateFormat, c.DueDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("due_date %q: expected YYYY-MM-DD", c.DueDate)
	}
	return t, nil
}

// Bindings converts the account section for the role registry.
func (c *Config) Bindings() map[accounts.Role]accounts.Binding {
	out := make(map[accounts.Role]accounts.Binding, len(c.Accounts))
	for name, ref := range c.Accounts {
		out[accounts.Role(name)] = accounts.Binding{Names: ref.Names, Multi: ref.Multi}
	}
	return out
}

func knownRole(name string) bool {
	for _, r := range accounts.Roles {
		if string(r) == name {
			return true
		}
	}
	return false
}
