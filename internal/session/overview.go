package session

import "github.com/pesapots/backend/internal/aggregate"

// Overview returns the dashboard figures of the session.
func (s *Service) Overview() aggregate.OverviewData {
	return aggregate.Overview(s.Snapshot(), s.Today())
}
