package entity

type ClientConfig struct {
	MapApiKey string `json:"map_api_key"`
	PublicURL string `json:"public_url"`
}
