package feed

import (
	"net/url"
	"strings"

	"github.com/rileyhilliard/corewatch/internal/errors"
)

// DefaultPath is the realtime CPU endpoint on the metrics server.
const DefaultPath = "/realtime/cpus"

// SubscriptionURL derives the streaming URL from a page location: same host,
// the given endpoint path, and the scheme upgraded to its WebSocket form.
func SubscriptionURL(page, path string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(page))
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid server address: "+page,
			"Use a URL like http://localhost:3000")
	}
	if u.Host == "" {
		return "", errors.New(errors.ErrConfig,
			"Server address has no host: "+page,
			"Use a URL like http://localhost:3000")
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", errors.New(errors.ErrConfig,
			"Unsupported scheme '"+u.Scheme+"' in "+page,
			"Use http, https, ws or wss")
	}

	if path == "" {
		path = DefaultPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u.Path = path
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	u.User = nil
	return u.String(), nil
}
