package models

// HeroMode selects what the landing banner shows.
type HeroMode string

const (
	HeroVideo HeroMode = "video"
	HeroImage HeroMode = "image"
)

func (m HeroMode) Valid() bool {
	return m == HeroVideo || m == HeroImage
}

// GatewayConfig holds the merchant credentials for the hosted payment page.
type GatewayConfig struct {
	MerchantID  string `json:"merchantId"`
	MerchantKey string `json:"merchantKey"`
	Passphrase  string `json:"passphrase"`
	Sandbox     bool   `json:"sandbox"`
}

// DefaultGatewayConfig is empty credentials in sandbox mode.
func DefaultGatewayConfig() GatewayConfig {
	return GatewayConfig{Sandbox: true}
}

// GatewayPatch merges into GatewayConfig; nil fields are left untouched.
type GatewayPatch struct {
	MerchantID  *string `json:"merchantId"`
	MerchantKey *string `json:"merchantKey"`
	Passphrase  *string `json:"passphrase"`
	Sandbox     *bool   `json:"sandbox"`
}

func (p GatewayPatch) Apply(cfg GatewayConfig) GatewayConfig {
	if p.MerchantID != nil {
		cfg.MerchantID = *p.MerchantID
	}
	if p.MerchantKey != nil {
		cfg.MerchantKey = *p.MerchantKey
	}
	if p.Passphrase != nil {
		cfg.Passphrase = *p.Passphrase
	}
	if p.Sandbox != nil {
		cfg.Sandbox = *p.Sandbox
	}
	return cfg
}
