package es

import (
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
)

const DefaultIndexPrefix = "catalog_"

type ClientConfig struct {
	Addresses []string
	// IndexPrefix is prepended to every source table name to form its index.
	IndexPrefix string
	Username    string
	Password    string
}

func (c ClientConfig) indexName(table string) string {
	prefix := c.IndexPrefix
	if prefix == "" {
		prefix = DefaultIndexPrefix
	}
	return strings.ToLower(prefix + table)
}

func newClient(config ClientConfig) (*elasticsearch.TypedClient, error) {
	cfg := elasticsearch.Config{
		Addresses: config.Addresses,
	}

	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	return elasticsearch.NewTypedClient(cfg)
}
