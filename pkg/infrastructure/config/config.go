package config

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/vsinha/prodplan/pkg/domain/entities"
	"github.com/vsinha/prodplan/pkg/domain/services"
)

// EnvPrefix prefixes environment overrides, e.g. PLANNER_CATALOG_PATH
const EnvPrefix = "PLANNER"

type MachineConfig struct {
	Name               string  `mapstructure:"name"`
	DailyCapacityHours float64 `mapstructure:"daily_capacity_hours"`
}

type OperationTimeConfig struct {
	ProductType string  `mapstructure:"product_type"`
	Machine     string  `mapstructure:"machine"`
	HoursPerSqm float64 `mapstructure:"hours_per_sqm"`
}

type PriceRuleConfig struct {
	Keywords []string `mapstructure:"keywords"`
	Price    float64  `mapstructure:"price"`
}

// Config is the planner configuration. Machines, operation times and price
// rules are lists rather than maps so that names keep their case.
type Config struct {
	App struct {
		Env     string
		LogMode string `mapstructure:"log_mode"`
	} `mapstructure:"app"`

	Catalog struct {
		Path              string
		OrdersSheet       string `mapstructure:"orders_sheet"`
		RequirementsSheet string `mapstructure:"requirements_sheet"`
		DefaultPriority   int    `mapstructure:"default_priority"`
	} `mapstructure:"catalog"`

	Planning struct {
		HoursPerDay        float64               `mapstructure:"hours_per_day"`
		DefaultHoursPerSqm float64               `mapstructure:"default_hours_per_sqm"`
		Machines           []MachineConfig       `mapstructure:"machines"`
		OperationTimes     []OperationTimeConfig `mapstructure:"operation_times"`
	} `mapstructure:"planning"`

	Reservation struct {
		RejectRecommit bool `mapstructure:"reject_recommit"`
		AuditRetention int  `mapstructure:"audit_retention"` // 0 keeps every event
	} `mapstructure:"reservation"`

	Pricing struct {
		DefaultPrice float64           `mapstructure:"default_price"`
		Rules        []PriceRuleConfig `mapstructure:"rules"`
	} `mapstructure:"pricing"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.log_mode", "quiet")
	v.SetDefault("catalog.path", "")
	v.SetDefault("catalog.orders_sheet", "Orders")
	v.SetDefault("catalog.requirements_sheet", "Material Requirements")
	v.SetDefault("catalog.default_priority", 10)
	v.SetDefault("planning.hours_per_day", 8.0)
	v.SetDefault("planning.default_hours_per_sqm", 2.0)
	v.SetDefault("planning.machines", []interface{}{})
	v.SetDefault("planning.operation_times", []interface{}{})
	v.SetDefault("reservation.reject_recommit", false)
	v.SetDefault("reservation.audit_retention", 0)
	v.SetDefault("pricing.default_price", 1000.0)
	v.SetDefault("pricing.rules", []interface{}{})
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("metrics.enabled", true)
}

// Load reads the optional config file at path, then applies PLANNER_*
// environment overrides on top of the built-in defaults
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var c Config
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return c, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("failed to decode config: %w", err)
	}
	return c, nil
}

// MachineCapacities returns the configured machine park, or nil when the
// built-in machines should be used
func (c Config) MachineCapacities() ([]entities.MachineCapacity, error) {
	if len(c.Planning.Machines) == 0 {
		return nil, nil
	}
	machines := make([]entities.MachineCapacity, 0, len(c.Planning.Machines))
	for i, m := range c.Planning.Machines {
		capacity, err := entities.NewMachineCapacity(m.Name, m.DailyCapacityHours)
		if err != nil {
			return nil, fmt.Errorf("planning.machines[%d]: %w", i, err)
		}
		machines = append(machines, *capacity)
	}
	return machines, nil
}

// OperationTable returns the configured operation times, or nil when the
// built-in tables should be used
func (c Config) OperationTable() (entities.OperationTable, error) {
	if len(c.Planning.OperationTimes) == 0 {
		return nil, nil
	}
	table := entities.OperationTable{}
	for i, op := range c.Planning.OperationTimes {
		product := strings.TrimSpace(op.ProductType)
		machine := strings.TrimSpace(op.Machine)
		if product == "" || machine == "" {
			return nil, fmt.Errorf("planning.operation_times[%d]: product type and machine are required", i)
		}
		table.Set(entities.ProductType(product), entities.Machine(machine), op.HoursPerSqm)
	}
	return table, nil
}

// Pricer builds the keyword pricer. Without configured rules the built-in
// price list applies.
func (c Config) Pricer() *services.KeywordPricer {
	fallback := decimal.NewFromFloat(c.Pricing.DefaultPrice)
	if len(c.Pricing.Rules) == 0 {
		return services.NewKeywordPricer(services.DefaultPriceRules(), fallback)
	}

	rules := make([]services.PriceRule, 0, len(c.Pricing.Rules))
	for _, r := range c.Pricing.Rules {
		rules = append(rules, services.PriceRule{
			Keywords: r.Keywords,
			Price:    decimal.NewFromFloat(r.Price),
		})
	}
	return services.NewKeywordPricer(rules, fallback)
}
