package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// ConsoleConfig carries operator-tunable billing console defaults. It is
// loaded from console.yml and hot-reloaded on change.
type ConsoleConfig struct {
	InvoiceNumberPrefix string        `json:"invoiceNumberPrefix" mapstructure:"invoiceNumberPrefix"`
	DefaultCurrency     string        `json:"defaultCurrency" mapstructure:"defaultCurrency"`
	DefaultTaxType      string        `json:"defaultTaxType" mapstructure:"defaultTaxType"`
	DefaultTaxRate      float64       `json:"defaultTaxRate" mapstructure:"defaultTaxRate"`
	PaymentTermDays     int           `json:"paymentTermDays" mapstructure:"paymentTermDays"`
	DefaultTerms        string        `json:"defaultTerms" mapstructure:"defaultTerms"`
	AgingBuckets        []AgingBucket `json:"agingBuckets" mapstructure:"agingBuckets"`
}

// AgingBucket classifies overdue invoices by days outstanding. Buckets are
// served verbatim to the console UI, which bins its receivables view with
// them client-side.
type AgingBucket struct {
	Label   string `json:"label" mapstructure:"label"`
	MinDays int    `json:"minDays" mapstructure:"minDays"`
	MaxDays *int   `json:"maxDays,omitempty" mapstructure:"maxDays"`
}

func DefaultConsoleConfig() ConsoleConfig {
	return ConsoleConfig{
		InvoiceNumberPrefix: "ADS",
		DefaultCurrency:     "INR",
		DefaultTaxType:      "GST",
		DefaultTaxRate:      18,
		PaymentTermDays:     15,
		DefaultTerms: "Payment due within 15 days from the invoice date. " +
			"Please remit via bank transfer to the account listed. " +
			"Late payments accrue a 2% monthly finance charge.",
		AgingBuckets: []AgingBucket{
			{Label: "0-30", MinDays: 0, MaxDays: intPtr(30)},
			{Label: "31-60", MinDays: 31, MaxDays: intPtr(60)},
			{Label: "60+", MinDays: 61, MaxDays: nil},
		},
	}
}

func intPtr(v int) *int { return &v }

// ConsoleConfigHolder stores the live console config behind an atomic
// so readers never block a reload.
type ConsoleConfigHolder struct {
	current atomic.Value // holds ConsoleConfig
}

func NewConsoleConfigHolder() (*ConsoleConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("console")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/billingdesk")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BILLINGDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultConsoleConfig()
	v.SetDefault("console.invoiceNumberPrefix", defaults.InvoiceNumberPrefix)
	v.SetDefault("console.defaultCurrency", defaults.DefaultCurrency)
	v.SetDefault("console.defaultTaxType", defaults.DefaultTaxType)
	v.SetDefault("console.defaultTaxRate", defaults.DefaultTaxRate)
	v.SetDefault("console.paymentTermDays", defaults.PaymentTermDays)
	v.SetDefault("console.defaultTerms", defaults.DefaultTerms)
	v.SetDefault("console.agingBuckets", defaults.AgingBuckets)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg ConsoleConfig
	if err := v.UnmarshalKey("console", &cfg); err != nil {
		return nil, err
	}
	if err := validateConsoleConfig(cfg); err != nil {
		return nil, err
	}

	holder := &ConsoleConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated ConsoleConfig
		if err := v.UnmarshalKey("console", &updated); err != nil {
			log.Printf("[console-config] reload failed: %v", err)
			return
		}
		if err := validateConsoleConfig(updated); err != nil {
			log.Printf("[console-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[console-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticConsoleConfigHolder wraps a fixed config with no file
// watching. Intended for tests.
func NewStaticConsoleConfigHolder(cfg ConsoleConfig) *ConsoleConfigHolder {
	holder := &ConsoleConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *ConsoleConfigHolder) Get() ConsoleConfig {
	return h.current.Load().(ConsoleConfig)
}

func validateConsoleConfig(cfg ConsoleConfig) error {
	if strings.TrimSpace(cfg.InvoiceNumberPrefix) == "" {
		return errors.New("console.invoiceNumberPrefix cannot be empty")
	}
	if cfg.DefaultTaxRate < 0 {
		return errors.New("console.defaultTaxRate cannot be negative")
	}
	if cfg.PaymentTermDays <= 0 {
		return errors.New("console.paymentTermDays must be positive")
	}
	if len(cfg.AgingBuckets) == 0 {
		return errors.New("console.agingBuckets cannot be empty")
	}
	return nil
}
