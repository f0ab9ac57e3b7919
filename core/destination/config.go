package destination

// Config holds configuration for the destination CMS API.
type Config struct {
	// BaseURL is the API root, e.g. https://api.cms.example.com/v2.
	BaseURL string `mapstructure:"base_url" default:""`
	// Token is the bearer token sent on every request.
	Token string `mapstructure:"token" default:""`
	// SiteID identifies the destination site for asset operations.
	SiteID string `mapstructure:"site_id" default:""`
	// ApparelCollection is the collection ID for the apparel vertical.
	ApparelCollection string `mapstructure:"apparel_collection" default:""`
	// EquipmentCollection is the collection ID for the equipment vertical.
	EquipmentCollection string `mapstructure:"equipment_collection" default:""`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
