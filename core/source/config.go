package source

// Config holds configuration for the source commerce API.
type Config struct {
	// BaseURL is the admin API root, e.g. https://shop.example.com/admin.
	BaseURL string `mapstructure:"base_url" default:""`
	// Token is the access token sent on every request.
	Token string `mapstructure:"token" default:""`
	// PageSize is the listing page size; the API caps it at 250.
	PageSize int `mapstructure:"page_size" default:"250"`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
