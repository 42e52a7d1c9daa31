package mock

import "github.com/harvestlabs/webharvest"

var _ webharvest.Strategy = (*Strategy)(nil)

// Strategy is a mock implementation of webharvest.Strategy.
type Strategy struct {
	NameFn    func() webharvest.Source
	ExtractFn func(html string, baseURL string) (*webharvest.Draft, error)
}

func (s *Strategy) Name() webharvest.Source {
	if s.NameFn == nil {
		return webharvest.SourcePrimary
	}
	return s.NameFn()
}

func (s *Strategy) Extract(html string, baseURL string) (*webharvest.Draft, error) {
	return s.ExtractFn(html, baseURL)
}
