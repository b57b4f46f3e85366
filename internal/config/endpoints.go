package config

import "github.com/rileyhilliard/cpubars/internal/source"

// ResolveEndpoints derives the pull and push URLs from URL, then applies
// any explicit overrides from the endpoints section.
func (c *Config) ResolveEndpoints() (source.Endpoints, error) {
	var ep source.Endpoints
	if c.URL != "" {
		var err error
		if ep, err = source.Resolve(c.URL); err != nil {
			return source.Endpoints{}, err
		}
	}
	if c.Endpoints.Pull != "" {
		ep.Pull = c.Endpoints.Pull
	}
	if c.Endpoints.Push != "" {
		ep.Push = c.Endpoints.Push
	}
	return ep, nil
}
