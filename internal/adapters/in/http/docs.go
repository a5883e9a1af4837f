// Package http is the inbound echo adapter: it binds the servers
// ServerInterface to the order use cases and maps their errors to statuses.
package http

import (
	"activation/internal/api/servers"

	"github.com/swaggo/swag"
)

type apiDoc struct{}

func (apiDoc) ReadDoc() string {
	return string(servers.RawSpec())
}

func init() {
	swag.Register(swag.Name, apiDoc{})
}
